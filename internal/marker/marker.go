package marker

import (
	"context"

	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// Marker draws annotations for fired alerts. Implementations decide where the
// annotation ends up (a chart, a table, a file).
type Marker interface {
	// Mark records one annotation.
	Mark(ctx context.Context, mark types.Mark) error
	// GetMarks returns every annotation recorded so far, oldest first.
	GetMarks() ([]types.Mark, error)
}
