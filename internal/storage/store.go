package storage

import (
	"context"

	"punnettlab/internal/model"
)

// Store defines persistence operations for cross history.
type Store interface {
	Init(ctx context.Context) error
	SaveCross(ctx context.Context, record model.CrossRecord) error
	GetCross(ctx context.Context, id string) (model.CrossRecord, bool, error)
	// ListCrosses returns records newest first; limit <= 0 returns all.
	ListCrosses(ctx context.Context, limit int) ([]model.CrossRecord, error)
	DeleteCross(ctx context.Context, id string) error
}
