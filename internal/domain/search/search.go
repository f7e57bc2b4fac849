package search

import (
	"github.com/kailas-cloud/vecprep/internal/domain/validator"
	"github.com/kailas-cloud/vecprep/internal/domain/vector"
)

// Spec is a validated nearest-neighbor query without its date filter.
type Spec struct {
	tableName string
	queries   vector.Batch
	topK      int64
	nProbe    int64
}

// New validates the table name, topk and nprobe, then every query vector.
// topk and nprobe are only checked for being positive; server bounds apply later.
func New(tableName string, vectors [][]float32, topK, nProbe int64) (Spec, error) {
	if err := validator.CheckAll(
		validator.P(validator.FieldTableName, tableName),
		validator.P(validator.FieldTopK, topK),
		validator.P(validator.FieldNProbe, nProbe),
	); err != nil {
		return Spec{}, err
	}

	queries, err := vector.New(vectors, nil)
	if err != nil {
		return Spec{}, err
	}

	return Spec{tableName: tableName, queries: queries, topK: topK, nProbe: nProbe}, nil
}

// TableName returns the searched table.
func (s Spec) TableName() string { return s.tableName }

// Queries returns the query vectors.
func (s Spec) Queries() vector.Batch { return s.queries }

// TopK returns the number of neighbors per query.
func (s Spec) TopK() int64 { return s.topK }

// NProbe returns the number of clusters probed.
func (s Spec) NProbe() int64 { return s.nProbe }
