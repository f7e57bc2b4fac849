package vector

import (
	"slices"

	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/domain/validator"
)

// Batch is an ordered set of equal-dimension vectors, optionally paired 1:1
// with ids (immutable value object).
type Batch struct {
	vectors [][]float32
	ids     []int64
}

// New validates vectors and the optional ids (nil means "server assigns ids").
// The first illegal vector aborts construction. The batch keeps its own copy
// of vectors and ids.
func New(vectors [][]float32, ids []int64) (Batch, error) {
	if ids != nil {
		if err := validator.Check(validator.FieldIDs, ids); err != nil {
			return Batch{}, err
		}
		if len(ids) != len(vectors) {
			return Batch{}, domain.NewParamError("", "length of vectors do not match that of ids")
		}
	}

	dim := 0
	for i, v := range vectors {
		if !validator.IsLegalArray(v) {
			return Batch{}, domain.NewParamError("vectors",
				"vectors must be 2-dimensional array: vector %d is empty or not numeric", i)
		}
		if i == 0 {
			dim = len(v)
			continue
		}
		if len(v) != dim {
			return Batch{}, domain.NewParamError("vectors",
				"vectors must be 2-dimensional array: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	own := make([][]float32, len(vectors))
	for i, v := range vectors {
		own[i] = slices.Clone(v)
	}
	return Batch{vectors: own, ids: slices.Clone(ids)}, nil
}

// Vectors returns the vectors in order.
func (b Batch) Vectors() [][]float32 { return b.vectors }

// IDs returns the ids, nil when absent.
func (b Batch) IDs() []int64 { return b.ids }

// HasIDs reports whether ids were supplied.
func (b Batch) HasIDs() bool { return b.ids != nil }

// Len returns the number of vectors.
func (b Batch) Len() int { return len(b.vectors) }
