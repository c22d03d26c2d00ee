package ports

import (
	"context"
	"time"
)

// TransferEvent evento emitido tras un traslado confirmado.
type TransferEvent struct {
	TransferID string    `json:"transfer_id"`
	SourceID   string    `json:"source_table_id"`
	DestID     string    `json:"destination_table_id"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LowStockEvent evento emitido cuando un movimiento deja un artículo por
// debajo de su punto de reorden.
type LowStockEvent struct {
	ItemID         string    `json:"item_id"`
	Name           string    `json:"name"`
	QuantityOnHand int64     `json:"quantity_on_hand"`
	ReorderPoint   int64     `json:"reorder_point"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ReorgEvent evento emitido al completar una reorganización de cuadrículas.
type ReorgEvent struct {
	Tables     int       `json:"tables"`
	Cells      int       `json:"cells"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publica eventos de dominio hacia colaboradores externos
// (auditoría/notificaciones). Fire-and-forget: un fallo de publicación nunca
// afecta la corrección del motor; las implementaciones no devuelven error.
type Notifier interface {
	TransferCompleted(ctx context.Context, ev TransferEvent)
	LowStock(ctx context.Context, ev LowStockEvent)
	ReorganizationCompleted(ctx context.Context, ev ReorgEvent)
}

// NopNotifier descarta todos los eventos (tests, arranque sin colaborador).
type NopNotifier struct{}

func (NopNotifier) TransferCompleted(context.Context, TransferEvent)    {}
func (NopNotifier) LowStock(context.Context, LowStockEvent)             {}
func (NopNotifier) ReorganizationCompleted(context.Context, ReorgEvent) {}
