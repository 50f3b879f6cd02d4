package interfaces

import "context"

// TxManager выполняет функцию внутри одной транзакции хранилища.
//
// Многошаговые операции движка (создание тренировки с упражнениями, каскадная
// инактивация, полная замена списка упражнений) обязаны выполняться атомарно:
// частичный каскад или частичная замена никогда не должны становиться видимыми.
// Реализация прокидывает транзакционное подключение через контекст, поэтому
// вложенные вызовы репозиториев внутри fn попадают в ту же транзакцию.
type TxManager interface {
	// Do выполняет fn в транзакции. Ошибка fn откатывает все изменения.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
