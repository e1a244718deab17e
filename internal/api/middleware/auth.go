package middleware

import (
	"context"
	"net/http"
)

// operatorHeader заголовок с идентификатором оператора-диспетчера
// Аутентификацию выполняет шлюз, сюда приходит уже проверенный идентификатор
const operatorHeader = "X-User-ID"

type operatorKey struct{}

// Auth извлекает идентификатор оператора из заголовка в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if operatorID := r.Header.Get(operatorHeader); operatorID != "" {
			r = r.WithContext(context.WithValue(r.Context(), operatorKey{}, operatorID))
		}
		next.ServeHTTP(w, r)
	})
}

// OperatorID возвращает идентификатор оператора из контекста
// Пустая строка означает, что заголовок не был передан
func OperatorID(ctx context.Context) string {
	if id, ok := ctx.Value(operatorKey{}).(string); ok {
		return id
	}
	return ""
}
