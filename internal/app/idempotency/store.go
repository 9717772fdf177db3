// Package idempotency lets the booking workflow replay a previous
// result when a client retries with the same Idempotency-Key header.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stayhub/internal/domain/shared/fault"
)

type Record struct {
	Key        string
	Payload    []byte
	Error      string
	Kind       fault.Kind
	OccurredAt time.Time
}

type Store interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
}

// Execute runs fn under the idempotency key. On a repeated key the
// stored outcome is replayed into out without invoking fn again. An
// empty key or nil store disables the guard.
func Execute(ctx context.Context, store Store, key string, out any, fn func(ctx context.Context) (any, error)) error {
	if store == nil || key == "" {
		result, err := fn(ctx)
		if err != nil {
			return err
		}
		return capture(result, out)
	}

	rec, found, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if found {
		if rec.Error != "" {
			return replayError(rec)
		}
		return json.Unmarshal(rec.Payload, out)
	}

	result, err := fn(ctx)
	record := Record{Key: key, OccurredAt: time.Now().UTC()}
	if err != nil {
		record.Error = fault.MessageOf(err)
		record.Kind = fault.KindOf(err)
		if saveErr := store.Save(ctx, record); saveErr != nil {
			return errors.Join(err, saveErr)
		}
		return err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	record.Payload = payload
	if err := store.Save(ctx, record); err != nil {
		return err
	}
	return capture(result, out)
}

// replayError rebuilds the typed error for a stored rejection. The
// kind must survive the round trip so a replayed rejection maps to the
// same status code as the first attempt.
func replayError(rec Record) error {
	switch rec.Kind {
	case fault.KindInvalidArgument:
		return fault.InvalidArgument(rec.Error)
	case fault.KindConflict:
		return fault.Conflict(rec.Error)
	case fault.KindNotFound:
		return fault.NotFound(rec.Error)
	default:
		return fault.Internal(rec.Error, nil)
	}
}

func capture(result, out any) error {
	if out == nil {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}
