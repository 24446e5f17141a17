package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/cupcakeria/internal/port"
	"go.uber.org/zap"
)

// SaveJSON marshals value and stores it under key.
func SaveJSON(ctx context.Context, st port.Storage, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := st.Save(ctx, key, data); err != nil {
		return fmt.Errorf("st.Save: %w", err)
	}

	return nil
}

// LoadJSON reads and decodes the value stored under key. Absent,
// unreadable and malformed state all come back as (zero, false): corrupt
// local state must never block the caller, so decode failures are logged
// and the caller proceeds with its empty default.
func LoadJSON[T any](ctx context.Context, st port.Storage, logger *zap.Logger, key string) (T, bool) {
	var zero T

	data, found, err := st.Load(ctx, key)
	if err != nil {
		logger.Warn("load failed, using empty default",
			zap.String("key", key), zap.Error(err))
		return zero, false
	}
	if !found {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn("stored state is malformed, using empty default",
			zap.String("key", key), zap.Error(err))
		return zero, false
	}

	return value, true
}
