package store

import (
	"context"
	"errors"

	"storefront-service/models"
)

// ErrInvalidVisitorID is returned for an empty visitor id.
var ErrInvalidVisitorID = errors.New("invalid visitor id")

// VisitorStore persists per-visitor client state. Load of an unknown id returns an
// empty state, not an error.
type VisitorStore interface {
	Load(ctx context.Context, visitorID string) (*models.VisitorState, error)
	Save(ctx context.Context, visitorID string, state *models.VisitorState) error
}
