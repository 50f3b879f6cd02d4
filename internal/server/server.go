package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"igym-app/internal/config"
	"igym-app/internal/database"
	authhandler "igym-app/internal/handler/auth"
	gymhandler "igym-app/internal/handler/gym"
	"igym-app/internal/handler/health"
	"igym-app/internal/handler/middleware"
	userhandler "igym-app/internal/handler/user"
	workouthandler "igym-app/internal/handler/workout"
	pgrepo "igym-app/internal/repository/postgres"
	authuc "igym-app/internal/usecase/auth"
	gymuc "igym-app/internal/usecase/gym"
	useruc "igym-app/internal/usecase/user"
	workoutuc "igym-app/internal/usecase/workout"
	jwtsvc "igym-app/pkg/jwt"
	"igym-app/pkg/logger"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *database.DB
	cfg        *config.Config

	jwtService jwtsvc.Service
	principals middleware.PrincipalResolver

	authHandler    *authhandler.Handler
	userHandler    *userhandler.Handler
	gymHandler     *gymhandler.Handler
	workoutHandler *workouthandler.Handler
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config, db *database.DB) *Server {
	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}

	// Собираем граф зависимостей один раз: репозитории -> usecase-слой -> хендлеры.
	// Каскады инактивации идут сверху вниз, поэтому usecase-сервисы
	// создаются в обратном порядке: workout -> gym -> user.
	gormDB := db.DB
	appLog := logger.Default()

	txManager := pgrepo.NewTxManager(gormDB)
	userRepo := pgrepo.NewUserRepository(gormDB)
	gymRepo := pgrepo.NewGymRepository(gormDB)
	workoutRepo := pgrepo.NewWorkoutRepository(gormDB)

	workoutService := workoutuc.NewService(workoutRepo, gymRepo, txManager, appLog)
	gymService := gymuc.NewService(gymRepo, userRepo, workoutService, txManager, appLog)
	userService := useruc.NewService(userRepo, gymService, txManager, appLog)

	s.jwtService = jwtsvc.NewService(&cfg.JWT)
	s.principals = middleware.NewPrincipalResolver(userRepo)
	authService := authuc.NewService(userRepo, s.jwtService, appLog)

	s.authHandler = authhandler.NewHandler(authService)
	s.userHandler = userhandler.NewHandler(userService)
	s.gymHandler = gymhandler.NewHandler(gymService)
	s.workoutHandler = workouthandler.NewHandler(workoutService)

	// Настраиваем middleware и роуты
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery middleware - должен быть первым для перехвата паник
	s.router.Use(middleware.Recovery())

	// Logger middleware - логирование всех запросов
	s.router.Use(middleware.LoggerStructured())

	// CORS middleware - настройка CORS
	s.router.Use(middleware.CORS(&s.cfg.CORS))

	// Аутентификация разбирает токен на каждом запросе, но никогда не
	// отклоняет его сама: решение принимает RequireAuth на защищённых группах
	s.router.Use(middleware.Authenticate(s.jwtService, s.principals))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()

	v1 := s.router.Group("/api/v1")

	// GET /api/v1/ — корневой эндпоинт API v1, возвращает версию и базовую информацию.
	v1.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "iGym API v1",
			"version": "1.0.0",
		})
	})

	// POST /api/v1/login — вход по имени/паролю, выдаёт токен.
	v1.POST("/login", s.authHandler.Login)

	s.setupUserRoutes(v1)
	s.setupGymRoutes(v1)
	s.setupWorkoutRoutes(v1)
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	healthHandler := health.NewHandler(s.db, s.cfg.AppEnv)
	// GET /health — базовый health-check сервера (жив ли процесс).
	s.router.GET("/health", healthHandler.Health)
	// GET /health/db — проверка доступности базы данных.
	s.router.GET("/health/db", healthHandler.HealthDB)
}

// setupUserRoutes настраивает эндпоинты пользователей и их залов.
func (s *Server) setupUserRoutes(v1 *gin.RouterGroup) {
	users := v1.Group("/users")
	{
		// POST /api/v1/users — регистрация; единственная мутация без токена.
		users.POST("", s.userHandler.Create)

		protected := users.Group("")
		protected.Use(middleware.RequireAuth())
		{
			// GET /api/v1/users — все активные пользователи.
			protected.GET("", s.userHandler.FindAll)
			// PATCH /api/v1/users/:userId — переименование пользователя.
			protected.PATCH("/:userId", s.userHandler.UpdateName)
			// DELETE /api/v1/users/:userId — каскадная инактивация пользователя.
			protected.DELETE("/:userId", s.userHandler.Delete)
			// POST /api/v1/users/:userId/gyms — создать зал под владельцем.
			protected.POST("/:userId/gyms", s.gymHandler.Create)
			// GET /api/v1/users/:userId/gyms — активные залы владельца.
			protected.GET("/:userId/gyms", s.gymHandler.FindByUser)
		}
	}
}

// setupGymRoutes настраивает защищённые эндпоинты залов и их тренировок.
func (s *Server) setupGymRoutes(v1 *gin.RouterGroup) {
	gyms := v1.Group("/gyms")
	gyms.Use(middleware.RequireAuth())
	{
		// GET /api/v1/gyms — все активные залы.
		gyms.GET("", s.gymHandler.FindAll)
		// PATCH /api/v1/gyms/:gymId — переименование зала.
		gyms.PATCH("/:gymId", s.gymHandler.UpdateName)
		// DELETE /api/v1/gyms/:gymId — каскадная инактивация зала.
		gyms.DELETE("/:gymId", s.gymHandler.Delete)
		// POST /api/v1/gyms/:gymId/workouts — создать тренировку в зале.
		gyms.POST("/:gymId/workouts", s.workoutHandler.Create)
		// GET /api/v1/gyms/:gymId/workouts — активные тренировки зала.
		gyms.GET("/:gymId/workouts", s.workoutHandler.FindByGym)
	}
}

// setupWorkoutRoutes настраивает защищённые эндпоинты тренировок и упражнений.
func (s *Server) setupWorkoutRoutes(v1 *gin.RouterGroup) {
	workouts := v1.Group("/workouts")
	workouts.Use(middleware.RequireAuth())
	{
		// PATCH /api/v1/workouts/:id — полная замена содержимого тренировки.
		workouts.PATCH("/:id", s.workoutHandler.Update)
		// DELETE /api/v1/workouts/:id — каскадная инактивация тренировки.
		workouts.DELETE("/:id", s.workoutHandler.Delete)
	}

	exercises := v1.Group("/exercises")
	exercises.Use(middleware.RequireAuth())
	{
		// DELETE /api/v1/exercises/:id — инактивация одного упражнения.
		exercises.DELETE("/:id", s.workoutHandler.DeleteExercise)
	}
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения сигналов ОС
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Канал для ошибок запуска сервера
	serverErr := make(chan error, 1)

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("HTTP сервер запущен на %s", address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	// Ожидаем либо сигнал для graceful shutdown, либо ошибку запуска
	select {
	case err := <-serverErr:
		// Если сервер не смог запуститься, пытаемся корректно остановить
		log.Printf("Ошибка запуска сервера: %v", err)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал %v для остановки сервера...", sig)
	}

	// Создаем контекст с таймаутом для graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Останавливаем сервер
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Println("HTTP сервер успешно остановлен")
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
