package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker drains the outbox collection and publishes each event as a
// CloudEvents envelope. The topic comes from the event name prefix:
// booking.created goes to booking.events.v1. A publish failure marks
// the document for retry with the configured backoff; the worker
// itself keeps running.
type Worker struct {
	Store       *Store
	Producer    Producer
	Logger      *slog.Logger
	Interval    time.Duration
	TopicPrefix string
	Source      string
	ID          string
	Backoff     []time.Duration
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	workerID := w.ID
	if workerID == "" {
		workerID = uuid.NewString()
	}

	interval := w.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx, workerID); err != nil {
				return err
			}
		}
	}
}

// drain claims and relays pending documents until the backlog is empty.
func (w *Worker) drain(ctx context.Context, workerID string) error {
	for {
		doc, err := w.Store.Claim(ctx, workerID)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}
		if err := w.relay(ctx, doc); err != nil {
			return err
		}
	}
}

func (w *Worker) relay(ctx context.Context, doc *EventDocument) error {
	payload, headers, err := w.envelope(doc)
	if err != nil {
		return w.retryLater(ctx, doc, "encode outbox event", err)
	}
	if err := w.Producer.Publish(ctx, w.topicFor(doc.Name), doc.Aggregate, payload, headers); err != nil {
		return w.retryLater(ctx, doc, "publish outbox event", err)
	}
	return w.Store.MarkSent(ctx, doc.ID)
}

func (w *Worker) retryLater(ctx context.Context, doc *EventDocument, msg string, cause error) error {
	if w.Logger != nil {
		w.Logger.Warn(msg, "event_id", doc.ID, "error", cause)
	}
	return w.Store.MarkFailed(ctx, doc.ID, time.Now().Add(w.backoffFor(doc.Attempts)), cause.Error())
}

// envelope wraps the stored payload in a CloudEvents 1.0 structure.
func (w *Worker) envelope(doc *EventDocument) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(doc.Payload, &data); err != nil {
		return nil, nil, err
	}

	source := w.Source
	if source == "" {
		source = "app://stayhub"
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            doc.Name + ".v1",
		"source":          source,
		"time":            doc.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	if trace, ok := doc.Headers["traceparent"]; ok {
		evt["traceparent"] = trace
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}

	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	for k, v := range doc.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

func (w *Worker) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	return w.TopicPrefix + base + ".events.v1"
}

func (w *Worker) backoffFor(attempts int) time.Duration {
	switch {
	case len(w.Backoff) == 0:
		return 5 * time.Second
	case attempts < len(w.Backoff):
		return w.Backoff[attempts]
	default:
		return w.Backoff[len(w.Backoff)-1]
	}
}
