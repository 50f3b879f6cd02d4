package postgres

import (
	"context"

	"gorm.io/gorm"

	repo "igym-app/internal/repository/interfaces"
)

// txKey — ключ контекста для транзакционного подключения.
type txKey struct{}

// TxManager реализует repo.TxManager поверх транзакций GORM.
// Транзакционное подключение прокидывается через контекст, поэтому репозитории,
// вызванные внутри Do, автоматически работают в той же транзакции.
type TxManager struct {
	db *gorm.DB
}

var _ repo.TxManager = (*TxManager)(nil)

// NewTxManager создает новый менеджер транзакций.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Do выполняет fn внутри одной транзакции БД. Ошибка fn откатывает изменения.
// Повторный вход (Do внутри Do) продолжает уже открытую транзакцию.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext возвращает транзакционное подключение из контекста
// или обычное подключение, если транзакция не открыта.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
