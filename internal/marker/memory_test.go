package marker

import (
	"context"
	"testing"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MemoryMarkerTestSuite struct {
	suite.Suite
}

func TestMemoryMarkerSuite(t *testing.T) {
	suite.Run(t, new(MemoryMarkerTestSuite))
}

func (suite *MemoryMarkerTestSuite) TestMarkKeepsOrderAndReplacesByName() {
	marker := NewMemoryMarker()
	ctx := context.Background()

	//nolint:exhaustruct // name and index are enough
	suite.Require().NoError(marker.Mark(ctx, types.Mark{Name: "a", BarIndex: 1}))
	//nolint:exhaustruct
	suite.Require().NoError(marker.Mark(ctx, types.Mark{Name: "b", BarIndex: 2}))
	//nolint:exhaustruct
	suite.Require().NoError(marker.Mark(ctx, types.Mark{Name: "a", BarIndex: 5}))

	marks, err := marker.GetMarks()
	suite.Require().NoError(err)
	suite.Require().Len(marks, 2)
	suite.Equal("a", marks[0].Name)
	suite.Equal(5, marks[0].BarIndex)
	suite.Equal("b", marks[1].Name)
}

func (suite *MemoryMarkerTestSuite) TestMarkRequiresName() {
	//nolint:exhaustruct
	err := NewMemoryMarker().Mark(context.Background(), types.Mark{})
	suite.True(errors.HasCode(err, errors.ErrCodeAnnotationFailed))
}
