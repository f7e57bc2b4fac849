package schema

import (
	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/domain/decode"
	"github.com/kailas-cloud/vecprep/internal/domain/metric"
	"github.com/kailas-cloud/vecprep/internal/domain/validator"
)

// DefaultIndexFileSize is the index file size (MB) applied when omitted.
const DefaultIndexFileSize int64 = 1024

// Schema is a validated table schema (immutable value object).
type Schema struct {
	name          string
	dimension     int64
	indexFileSize int64
	metricType    metric.Type
}

// New validates and creates a Schema. All fields must be set.
func New(name string, dimension, indexFileSize int64, mt metric.Type) (Schema, error) {
	if err := validator.CheckAll(
		validator.P(validator.FieldTableName, name),
		validator.P(validator.FieldDimension, dimension),
		validator.P(validator.FieldIndexFileSize, indexFileSize),
		validator.P(validator.FieldMetricType, mt),
	); err != nil {
		return Schema{}, err
	}
	return Schema{
		name:          name,
		dimension:     dimension,
		indexFileSize: indexFileSize,
		metricType:    mt,
	}, nil
}

// Name returns the table name.
func (s Schema) Name() string { return s.name }

// Dimension returns the vector dimension.
func (s Schema) Dimension() int64 { return s.dimension }

// IndexFileSize returns the index file size in MB.
func (s Schema) IndexFileSize() int64 { return s.indexFileSize }

// MetricType returns the distance function.
func (s Schema) MetricType() metric.Type { return s.metricType }

// Partial is the mapping form of a schema: every field optional.
// "name" is accepted as an alias of "table_name".
type Partial struct {
	TableName     *string      `mapstructure:"table_name"`
	Name          *string      `mapstructure:"name"`
	Dimension     *int64       `mapstructure:"dimension"`
	IndexFileSize *int64       `mapstructure:"index_file_size"`
	MetricType    *metric.Type `mapstructure:"metric_type"`
}

// Decode reads a schema mapping. Unknown keys are ignored; m is not modified.
func Decode(m map[string]any) (Partial, error) {
	var p Partial
	if err := decode.Lenient(m, &p); err != nil {
		return Partial{}, domain.NewParamError("table_schema", "%v", err)
	}
	return p, nil
}

// Resolve checks required fields, fills defaults and validates.
func (p Partial) Resolve() (Schema, error) {
	name, err := p.name()
	if err != nil {
		return Schema{}, err
	}
	if p.Dimension == nil {
		return Schema{}, domain.NewParamError(validator.FieldDimension, "is required")
	}

	indexFileSize := DefaultIndexFileSize
	if p.IndexFileSize != nil {
		indexFileSize = *p.IndexFileSize
	}
	mt := metric.Default
	if p.MetricType != nil {
		mt = *p.MetricType
	}

	return New(name, *p.Dimension, indexFileSize, mt)
}

func (p Partial) name() (string, error) {
	switch {
	case p.TableName != nil && p.Name != nil && *p.TableName != *p.Name:
		return "", domain.NewParamError(validator.FieldTableName,
			"conflicting table_name %q and name %q", *p.TableName, *p.Name)
	case p.TableName != nil:
		return *p.TableName, nil
	case p.Name != nil:
		return *p.Name, nil
	default:
		return "", domain.NewParamError(validator.FieldTableName, "is required")
	}
}

// FromMap decodes and resolves a schema mapping.
func FromMap(m map[string]any) (Schema, error) {
	p, err := Decode(m)
	if err != nil {
		return Schema{}, err
	}
	return p.Resolve()
}
