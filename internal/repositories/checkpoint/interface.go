package checkpoint

import (
	"context"
	"time"
)

// DefaultLookback is how far back the very first sync reaches when no
// checkpoint has ever been stored.
const DefaultLookback = 90 * 24 * time.Hour

// Repository describes persistence for the single-row sync checkpoint.
type Repository interface {
	// Get returns the last successful sync instant. On a cold store it seeds
	// and returns "now minus DefaultLookback".
	Get(ctx context.Context) (time.Time, error)

	// Set overwrites the checkpoint. The caller guarantees a single logical
	// owner per sync pass, so no read-modify-write cycle is needed.
	Set(ctx context.Context, t time.Time) error
}
