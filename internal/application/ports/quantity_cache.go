package ports

import "context"

// QuantityCache caché de solo-lectura del disponible por artículo. Es una
// proyección del libro: se recalcula desde él, nunca se escribe de forma
// independiente. Opcional; un miss obliga a plegar el libro.
type QuantityCache interface {
	Get(ctx context.Context, itemID string) (int64, bool)
	Set(ctx context.Context, itemID string, qty int64)
	Invalidate(ctx context.Context, itemID string)
}

// NopQuantityCache caché nula (arranque sin Redis, tests).
type NopQuantityCache struct{}

func (NopQuantityCache) Get(context.Context, string) (int64, bool) { return 0, false }
func (NopQuantityCache) Set(context.Context, string, int64)        {}
func (NopQuantityCache) Invalidate(context.Context, string)        {}
