package vecprep

import (
	"fmt"

	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/domain/daterange"
	"github.com/kailas-cloud/vecprep/internal/domain/index"
	"github.com/kailas-cloud/vecprep/internal/domain/schema"
	"github.com/kailas-cloud/vecprep/internal/domain/search"
	"github.com/kailas-cloud/vecprep/internal/domain/validator"
	"github.com/kailas-cloud/vecprep/internal/domain/vector"
	"github.com/kailas-cloud/vecprep/pkg/wire"
)

// TableName builds a name-only request.
func TableName(name string) (*wire.TableName, error) {
	if err := validator.Check(validator.FieldTableName, name); err != nil {
		return nil, err
	}
	return &wire.TableName{TableName: name}, nil
}

// TableSchema builds a table schema from a *wire.TableSchema (returned as is),
// a map[string]any or a SchemaInput.
//
//	vecprep.TableSchema(map[string]any{
//	    "table_name": "orders",
//	    "dimension":  16,
//	    "index_file_size": 1024, // optional, default 1024
//	    "metric_type": vecprep.MetricL2, // optional, default L2
//	})
func TableSchema(param any) (*wire.TableSchema, error) {
	in, err := ParseSchemaInput(param)
	if err != nil {
		return nil, err
	}
	return TableSchemaFrom(in)
}

// TableSchemaFrom builds a table schema from a resolved SchemaInput.
func TableSchemaFrom(in SchemaInput) (*wire.TableSchema, error) {
	switch x := in.(type) {
	case PrebuiltSchema:
		return x.Schema, nil
	case SchemaFields:
		s, err := schema.FromMap(x)
		if err != nil {
			return nil, err
		}
		return &wire.TableSchema{
			Status:        wire.SuccessStatus(),
			TableName:     s.Name(),
			Dimension:     s.Dimension(),
			IndexFileSize: s.IndexFileSize(),
			MetricType:    int32(s.MetricType()),
		}, nil
	default:
		return nil, domain.NewTypeError("table_schema", "TableSchema or map[string]any", in)
	}
}

// DateRange builds the transport form of (start, end].
// Each endpoint is a "yyyy-mm-dd" string, a time.Time or a Date.
func DateRange(start, end any) (wire.Range, error) {
	r, err := daterange.New(start, end)
	if err != nil {
		return wire.Range{}, err
	}
	return wire.Range{StartValue: r.Start(), EndValue: r.End()}, nil
}

// DateRanges normalizes a list of ranges, preserving order. Elements are
// wire.Range values (passed through unchanged) or (start, end) pairs:
// Pair, [2]any, [2]string, or a two-element []any / []string.
// An empty list yields an empty, non-nil slice.
func DateRanges(ranges []any) ([]wire.Range, error) {
	out := make([]wire.Range, 0, len(ranges))
	for i, item := range ranges {
		r, err := toRange(item)
		if err != nil {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func toRange(item any) (wire.Range, error) {
	switch x := item.(type) {
	case wire.Range:
		return x, nil
	case *wire.Range:
		if x == nil {
			return wire.Range{}, domain.NewParamError("ranges", "nil range")
		}
		return *x, nil
	case Pair:
		return DateRange(x.Start, x.End)
	case [2]any:
		return DateRange(x[0], x[1])
	case [2]string:
		return DateRange(x[0], x[1])
	case []any:
		if len(x) != 2 {
			return wire.Range{}, domain.NewParamError("ranges", "expected a (start, end) pair, got %d elements", len(x))
		}
		return DateRange(x[0], x[1])
	case []string:
		if len(x) != 2 {
			return wire.Range{}, domain.NewParamError("ranges", "expected a (start, end) pair, got %d elements", len(x))
		}
		return DateRange(x[0], x[1])
	default:
		return wire.Range{}, domain.NewParamError("ranges", "unsupported range type %T", item)
	}
}

// InsertParam builds an insert request. ids may be nil to let the server
// assign them; otherwise there must be exactly one id per vector. The request
// holds copies of vectors and ids.
func InsertParam(tableName string, vectors [][]float32, ids []int64) (*wire.InsertParam, error) {
	if err := validator.Check(validator.FieldTableName, tableName); err != nil {
		return nil, err
	}

	batch, err := vector.New(vectors, ids)
	if err != nil {
		return nil, err
	}

	req := &wire.InsertParam{
		TableName:      tableName,
		RowRecordArray: rowRecords(batch),
	}
	if batch.HasIDs() {
		req.RowIDArray = batch.IDs()
	}
	return req, nil
}

// Index builds an index definition.
func Index(indexType IndexType, nlist int64) (*wire.Index, error) {
	spec, err := index.New(indexType, nlist)
	if err != nil {
		return nil, err
	}
	return toWireIndex(spec), nil
}

// IndexParam builds an index build request. indexParams must be a
// map[string]any with index_type and nlist.
func IndexParam(tableName string, indexParams any) (*wire.IndexParam, error) {
	m, ok := indexParams.(map[string]any)
	if !ok {
		return nil, domain.NewTypeError("index_param", "map[string]any", indexParams)
	}
	if err := validator.Check(validator.FieldTableName, tableName); err != nil {
		return nil, err
	}

	spec, err := index.FromMap(m)
	if err != nil {
		return nil, err
	}

	return &wire.IndexParam{
		Status:    wire.SuccessStatus(),
		TableName: tableName,
		Index:     *toWireIndex(spec),
	}, nil
}

// SearchParam builds a search request. An empty or nil ranges list means no
// date filter and leaves QueryRangeArray nil.
func SearchParam(tableName string, vectors [][]float32, ranges []any, topk, nprobe int64) (*wire.SearchParam, error) {
	var queryRanges []wire.Range
	if len(ranges) > 0 {
		var err error
		queryRanges, err = DateRanges(ranges)
		if err != nil {
			return nil, err
		}
	}

	spec, err := search.New(tableName, vectors, topk, nprobe)
	if err != nil {
		return nil, err
	}

	return &wire.SearchParam{
		TableName:        spec.TableName(),
		QueryRecordArray: rowRecords(spec.Queries()),
		QueryRangeArray:  queryRanges,
		Topk:             spec.TopK(),
		Nprobe:           spec.NProbe(),
	}, nil
}

// SearchInFilesParam builds a search request restricted to the given index
// files. fileIDs are passed through as is.
func SearchInFilesParam(
	tableName string, vectors [][]float32, ranges []any,
	topk, nprobe int64, fileIDs []string,
) (*wire.SearchInFilesParam, error) {
	sp, err := SearchParam(tableName, vectors, ranges, topk, nprobe)
	if err != nil {
		return nil, err
	}
	return &wire.SearchInFilesParam{FileIDArray: fileIDs, SearchParam: *sp}, nil
}

// Cmd builds an administrative command request.
func Cmd(cmd string) (*wire.Command, error) {
	if err := validator.Check(validator.FieldCmd, cmd); err != nil {
		return nil, err
	}
	return &wire.Command{Cmd: cmd}, nil
}

// DeleteByRangeParam builds a request deleting the vectors of a table
// inside (start, end].
func DeleteByRangeParam(tableName string, start, end any) (*wire.DeleteByRangeParam, error) {
	r, err := DateRange(start, end)
	if err != nil {
		return nil, err
	}
	if err := validator.Check(validator.FieldTableName, tableName); err != nil {
		return nil, err
	}
	return &wire.DeleteByRangeParam{Range: r, TableName: tableName}, nil
}

func rowRecords(b vector.Batch) []wire.RowRecord {
	records := make([]wire.RowRecord, b.Len())
	for i, v := range b.Vectors() {
		records[i] = wire.RowRecord{VectorData: v}
	}
	return records
}

func toWireIndex(s index.Spec) *wire.Index {
	return &wire.Index{IndexType: int32(s.Type()), Nlist: s.NList()}
}
