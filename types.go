package vecprep

import (
	"github.com/kailas-cloud/vecprep/internal/domain/daterange"
	"github.com/kailas-cloud/vecprep/internal/domain/index"
	"github.com/kailas-cloud/vecprep/internal/domain/metric"
)

// MetricType is the distance function of a table.
type MetricType = metric.Type

// Metric type constants.
const (
	MetricL2 = metric.L2
	MetricIP = metric.IP
)

// IndexType is the index algorithm of a table.
type IndexType = index.Type

// Index type constants.
const (
	IndexFlat    = index.Flat
	IndexIVFFlat = index.IVFFlat
	IndexIVFSQ8  = index.IVFSQ8
	IndexMixNSG  = index.MixNSG
	IndexIVFSQ8H = index.IVFSQ8H
)

// Date is a calendar date accepted wherever a date-like value is expected.
type Date = daterange.Date

// Pair is an untyped (start, end) date range.
// Start and End take a "yyyy-mm-dd" string, a time.Time or a Date.
type Pair struct {
	Start any
	End   any
}

// ParseMetricType resolves a metric name such as "L2" or "IP".
func ParseMetricType(s string) (MetricType, error) {
	return metric.Parse(s)
}

// ParseIndexType resolves an index type name such as "IVFLAT".
func ParseIndexType(s string) (IndexType, error) {
	return index.ParseType(s)
}
