package logging

import (
	"context"
	"time"
)

// RequestInfo describe el request HTTP en curso. Cada entrada escrita con un
// contexto que lo lleva incluye el request id y la IP del cliente.
type RequestInfo struct {
	ID        string
	Start     time.Time
	ClientIP  string
	UserAgent string
}

type requestInfoKey struct{}

// WithRequest guarda los datos del request en el contexto
func WithRequest(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestFrom retorna los datos del request, vacío fuera de un handler HTTP
func RequestFrom(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info
}
