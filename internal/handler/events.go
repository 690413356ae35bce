package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

const EventQueue = "setup_sheet_events"

// publishSetupEvent notifies downstream consumers (dashboards, the notify
// worker) about a setup-sheet mutation. Publishing is best effort: a broker
// failure is logged and never fails the request that already committed.
func (h *Handler) publishSetupEvent(r *http.Request, kind, action string, id int64, name string, weekStart time.Time) {
	if h.eventChannel == nil {
		return
	}

	event := domain.SetupEvent{
		Kind:      kind,
		Action:    action,
		ID:        id,
		Name:      name,
		WeekStart: weekStart,
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("could not serialize setup event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = h.eventChannel.PublishWithContext(
		ctx,
		"",
		EventQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("could not publish setup event", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}
