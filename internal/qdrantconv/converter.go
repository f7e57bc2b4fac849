// Package qdrantconv translates built wire requests into Qdrant gRPC messages.
package qdrantconv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/domain/daterange"
	"github.com/kailas-cloud/vecprep/internal/domain/metric"
	"github.com/kailas-cloud/vecprep/pkg/wire"
)

// DefaultDateField is the payload key holding the insertion date of a point.
const DefaultDateField = "date"

// Converter maps wire requests onto Qdrant collections.
// A table becomes a collection of the same name; the insertion date of every
// point is kept in the DateField payload key so date ranges can filter on it.
type Converter struct {
	dateField string
	wait      bool
	newID     func() string
	now       func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithDateField sets the payload key used for date ranges.
func WithDateField(field string) Option {
	return func(c *Converter) {
		if field != "" {
			c.dateField = field
		}
	}
}

// WithWait makes write requests block until the change is applied.
func WithWait(wait bool) Option {
	return func(c *Converter) { c.wait = wait }
}

// WithIDGenerator overrides the point id generator used when a batch has no ids.
func WithIDGenerator(fn func() string) Option {
	return func(c *Converter) { c.newID = fn }
}

// WithClock overrides the clock stamping inserted points.
func WithClock(fn func() time.Time) Option {
	return func(c *Converter) { c.now = fn }
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		dateField: DefaultDateField,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DateField returns the payload key used for date ranges.
func (c *Converter) DateField() string { return c.dateField }

// Convert dispatches on the request type.
func (c *Converter) Convert(req any) (proto.Message, error) {
	switch r := req.(type) {
	case *wire.TableSchema:
		return c.CreateCollection(r)
	case *wire.InsertParam:
		return c.UpsertPoints(r), nil
	case *wire.SearchParam:
		return c.QueryBatch(r)
	case *wire.DeleteByRangeParam:
		return c.DeletePoints(r)
	case *wire.TableName:
		return &qdrant.GetCollectionInfoRequest{CollectionName: r.TableName}, nil
	default:
		return nil, fmt.Errorf("%w: %T has no qdrant form", domain.ErrUnsupported, req)
	}
}

// HealthCheck converts a probe schema to confirm the converter is usable.
func (c *Converter) HealthCheck(_ context.Context) error {
	_, err := c.CreateCollection(&wire.TableSchema{
		TableName: "health_probe", Dimension: 1, IndexFileSize: 1, MetricType: int32(metric.L2),
	})
	return err
}

// CreateCollection maps a table schema onto a collection with a single
// unnamed vector. index_file_size (MB) bounds the segment size (KB).
func (c *Converter) CreateCollection(s *wire.TableSchema) (*qdrant.CreateCollection, error) {
	distance, err := toDistance(metric.Type(s.MetricType))
	if err != nil {
		return nil, err
	}
	segmentKB := uint64(s.IndexFileSize) * 1024

	return &qdrant.CreateCollection{
		CollectionName: s.TableName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.Dimension),
			Distance: distance,
		}),
		OptimizersConfig: &qdrant.OptimizersConfigDiff{
			MaxSegmentSize: &segmentKB,
		},
	}, nil
}

// UpsertPoints maps an insert onto points. Row ids become numeric point ids;
// without ids every point gets a generated UUID.
func (c *Converter) UpsertPoints(p *wire.InsertParam) *qdrant.UpsertPoints {
	today := daterange.DateOf(c.now()).String()

	points := make([]*qdrant.PointStruct, 0, len(p.RowRecordArray))
	for i, rec := range p.RowRecordArray {
		var id *qdrant.PointId
		if p.RowIDArray != nil {
			id = qdrant.NewIDNum(uint64(p.RowIDArray[i]))
		} else {
			id = qdrant.NewID(c.newID())
		}
		points = append(points, &qdrant.PointStruct{
			Id:      id,
			Vectors: qdrant.NewVectors(rec.VectorData...),
			Payload: qdrant.NewValueMap(map[string]any{c.dateField: today}),
		})
	}

	wait := c.wait
	return &qdrant.UpsertPoints{
		CollectionName: p.TableName,
		Wait:           &wait,
		Points:         points,
	}
}

// QueryBatch maps a search onto one query per vector. All ranges apply to
// every query and match if any of them does.
func (c *Converter) QueryBatch(p *wire.SearchParam) (*qdrant.QueryBatchPoints, error) {
	filter, err := c.rangeFilter(p.QueryRangeArray)
	if err != nil {
		return nil, err
	}

	limit := uint64(p.Topk)
	ef := uint64(p.Nprobe)

	queries := make([]*qdrant.QueryPoints, 0, len(p.QueryRecordArray))
	for _, rec := range p.QueryRecordArray {
		queries = append(queries, &qdrant.QueryPoints{
			CollectionName: p.TableName,
			Query:          qdrant.NewQuery(rec.VectorData...),
			Filter:         filter,
			Limit:          &limit,
			Params:         &qdrant.SearchParams{HnswEf: &ef},
		})
	}

	return &qdrant.QueryBatchPoints{
		CollectionName: p.TableName,
		QueryPoints:    queries,
	}, nil
}

// DeletePoints maps a range delete onto a filter selector.
func (c *Converter) DeletePoints(p *wire.DeleteByRangeParam) (*qdrant.DeletePoints, error) {
	filter, err := c.rangeFilter([]wire.Range{p.Range})
	if err != nil {
		return nil, err
	}

	wait := c.wait
	return &qdrant.DeletePoints{
		CollectionName: p.TableName,
		Wait:           &wait,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{Filter: filter},
		},
	}, nil
}

// rangeFilter returns nil for no ranges.
func (c *Converter) rangeFilter(ranges []wire.Range) (*qdrant.Filter, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	conditions := make([]*qdrant.Condition, 0, len(ranges))
	for i, r := range ranges {
		dr, err := daterange.New(r.StartValue, r.EndValue)
		if err != nil {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		conditions = append(conditions, qdrant.NewDatetimeRange(c.dateField, &qdrant.DatetimeRange{
			Gt:  timestamppb.New(dr.StartDate().Time()),
			Lte: timestamppb.New(dr.EndDate().Time()),
		}))
	}

	return &qdrant.Filter{Should: conditions}, nil
}

func toDistance(m metric.Type) (qdrant.Distance, error) {
	switch m {
	case metric.L2:
		return qdrant.Distance_Euclid, nil
	case metric.IP:
		return qdrant.Distance_Dot, nil
	default:
		return qdrant.Distance_UnknownDistance, domain.NewParamError("metric_type", "unknown metric type %d", int32(m))
	}
}
