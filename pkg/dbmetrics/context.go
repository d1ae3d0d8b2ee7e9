package dbmetrics

import "context"

type txContextKey struct{}

// WithTx кладет активную транзакцию в контекст.
// Репозитории достают её через GetExecutor и выполняют запросы внутри транзакции.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает исполнителя запросов: транзакцию из контекста,
// если она там есть, иначе переданный по умолчанию
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(TxExecutor); ok {
		return tx
	}
	return def
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return ok
}
