package status

// Status описывает двухсостоянийный жизненный цикл сущности.
// Вместо физического удаления сущности переводятся в inactive (мягкое удаление).
type Status string

const (
	Active   Status = "active"   // сущность видима и доступна для операций
	Inactive Status = "inactive" // сущность логически удалена
)

// IsValid возвращает true, если значение статуса известно системе.
func (s Status) IsValid() bool {
	return s == Active || s == Inactive
}
