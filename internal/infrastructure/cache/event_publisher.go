package cache

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/Ostricola-api/internal/application/ports"
	"github.com/jhoicas/Ostricola-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var _ ports.Notifier = (*EventPublisher)(nil)

// Canal pub/sub para colaboradores de auditoría/notificaciones.
const eventChannel = "ostricola:events"

// EventPublisher publica los eventos del motor por Redis pub/sub y los deja
// en el log estructurado. Fire-and-forget: un fallo de publicación se loguea
// y se descarta; la operación que lo originó ya está confirmada.
type EventPublisher struct {
	rdb *redis.Client // nil = solo log
	log *logger.Logger
}

// NewEventPublisher construye el publicador. rdb puede ser nil.
func NewEventPublisher(rdb *redis.Client, log *logger.Logger) *EventPublisher {
	return &EventPublisher{rdb: rdb, log: log}
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, payload any) {
	p.log.Info().Str("event", eventType).Interface("payload", payload).Msg("evento de dominio")
	if p.rdb == nil {
		return
	}
	body, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		p.log.Warn().Err(err).Str("event", eventType).Msg("eventos: serializar")
		return
	}
	if err := p.rdb.Publish(ctx, eventChannel, body).Err(); err != nil {
		p.log.Warn().Err(err).Str("event", eventType).Msg("eventos: publicar")
	}
}

// TransferCompleted publica un traslado confirmado.
func (p *EventPublisher) TransferCompleted(ctx context.Context, ev ports.TransferEvent) {
	p.publish(ctx, "transfer.completed", ev)
}

// LowStock publica un artículo bajo su punto de reorden.
func (p *EventPublisher) LowStock(ctx context.Context, ev ports.LowStockEvent) {
	p.publish(ctx, "stock.below_reorder", ev)
}

// ReorganizationCompleted publica el fin de una reorganización.
func (p *EventPublisher) ReorganizationCompleted(ctx context.Context, ev ports.ReorgEvent) {
	p.publish(ctx, "grid.reorganized", ev)
}
