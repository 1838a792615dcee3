package marker

import (
	"context"
	"sync"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// MemoryMarker keeps annotations in memory.
type MemoryMarker struct {
	marks []types.Mark
	mu    sync.Mutex
}

func NewMemoryMarker() *MemoryMarker {
	return &MemoryMarker{marks: nil, mu: sync.Mutex{}}
}

// Mark implements Marker. Marks with a name already recorded replace the old one.
func (m *MemoryMarker) Mark(_ context.Context, mark types.Mark) error {
	if mark.Name == "" {
		return errors.New(errors.ErrCodeAnnotationFailed, "mark name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.marks {
		if m.marks[i].Name == mark.Name {
			m.marks[i] = mark

			return nil
		}
	}

	m.marks = append(m.marks, mark)

	return nil
}

// GetMarks implements Marker.
func (m *MemoryMarker) GetMarks() ([]types.Mark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Mark, len(m.marks))
	copy(out, m.marks)

	return out, nil
}
