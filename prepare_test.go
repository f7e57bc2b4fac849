package vecprep

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/vecprep/pkg/wire"
)

func TestTableName(t *testing.T) {
	req, err := TableName("orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TableName != "orders" {
		t.Errorf("TableName = %q", req.TableName)
	}

	for _, name := range []string{"", "bad-name", "9lives"} {
		if _, err := TableName(name); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("TableName(%q) error = %v, want ErrInvalidParameter", name, err)
		}
	}
}

func TestTableSchema_Defaults(t *testing.T) {
	got, err := TableSchema(map[string]any{"table_name": "orders", "dimension": 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &wire.TableSchema{
		Status:        wire.Status{ErrorCode: 0, Reason: "Client"},
		TableName:     "orders",
		Dimension:     16,
		IndexFileSize: 1024,
		MetricType:    int32(MetricL2),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TableSchema() = %+v, want %+v", got, want)
	}
}

func TestTableSchema_EchoesSuppliedValues(t *testing.T) {
	got, err := TableSchema(SchemaFields{
		"table_name":      "orders",
		"dimension":       256,
		"index_file_size": 2048,
		"metric_type":     MetricIP,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IndexFileSize != 2048 || got.MetricType != int32(MetricIP) || got.Dimension != 256 {
		t.Errorf("TableSchema() = %+v", got)
	}
}

func TestTableSchema_Idempotent(t *testing.T) {
	first, err := TableSchema(map[string]any{"table_name": "orders", "dimension": 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := TableSchema(first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Error("prebuilt schema was not returned unchanged")
	}

	third, err := TableSchemaFrom(PrebuiltSchema{Schema: first})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third != first {
		t.Error("PrebuiltSchema was not returned unchanged")
	}
}

func TestTableSchema_TypeMismatch(t *testing.T) {
	for _, in := range []any{nil, "orders", []any{"orders", 16}, 16, (*wire.TableSchema)(nil), PrebuiltSchema{}} {
		_, err := TableSchema(in)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("TableSchema(%#v) error = %v, want ErrTypeMismatch", in, err)
		}
	}
}

func TestTableSchema_InvalidParameter(t *testing.T) {
	tests := []map[string]any{
		{"dimension": 16},
		{"table_name": "orders"},
		{"table_name": "orders", "dimension": -1},
		{"table_name": "orders", "dimension": 16, "metric_type": "cosine"},
	}
	for _, in := range tests {
		_, err := TableSchema(in)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("TableSchema(%v) error = %v, want ErrInvalidParameter", in, err)
		}
	}
}

func TestDateRange_RoundTrip(t *testing.T) {
	got, err := DateRange("2019-05-25", "2019-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wire.Range{StartValue: "2019-05-25", EndValue: "2019-06-01"}
	if got != want {
		t.Errorf("DateRange() = %+v, want %+v", got, want)
	}

	fromDates, err := DateRange(
		time.Date(2019, 5, 25, 0, 0, 0, 0, time.UTC),
		Date{Year: 2019, Month: time.June, Day: 1},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromDates != got {
		t.Errorf("date objects gave %+v, strings gave %+v", fromDates, got)
	}
}

func TestDateRange_Unparseable(t *testing.T) {
	_, err := DateRange("25.05.2019", "2019-06-01")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestDateRanges_Empty(t *testing.T) {
	for _, in := range [][]any{nil, {}} {
		got, err := DateRanges(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil {
			t.Error("DateRanges() = nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	}
}

func TestDateRanges_MixedPreservesOrder(t *testing.T) {
	typed := wire.Range{StartValue: "anything", EndValue: "goes"}
	got, err := DateRanges([]any{
		[2]string{"2019-01-01", "2019-02-01"},
		typed,
		Pair{Start: "2019-03-01", End: time.Date(2019, 4, 1, 10, 0, 0, 0, time.UTC)},
		[]any{"2019-05-01", "2019-06-01"},
		&wire.Range{StartValue: "2019-07-01", EndValue: "2019-08-01"},
		[]string{"2019-09-01", "2019-10-01"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []wire.Range{
		{StartValue: "2019-01-01", EndValue: "2019-02-01"},
		typed,
		{StartValue: "2019-03-01", EndValue: "2019-04-01"},
		{StartValue: "2019-05-01", EndValue: "2019-06-01"},
		{StartValue: "2019-07-01", EndValue: "2019-08-01"},
		{StartValue: "2019-09-01", EndValue: "2019-10-01"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DateRanges() = %+v, want %+v", got, want)
	}
}

func TestDateRanges_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		in      []any
		wantErr string
	}{
		{"short pair", []any{[]any{"2019-01-01"}}, "range 0"},
		{"bad date", []any{[2]string{"2019-01-01", "2019-02-01"}, [2]string{"x", "2019-02-01"}}, "range 1"},
		{"scalar", []any{"2019-01-01"}, "unsupported range type"},
		{"nil pointer", []any{(*wire.Range)(nil)}, "nil range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DateRanges(tt.in)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestInsertParam(t *testing.T) {
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	req, err := InsertParam("orders", vectors, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TableName != "orders" || len(req.RowRecordArray) != 2 || req.RowIDArray != nil {
		t.Errorf("InsertParam() = %+v", req)
	}
	if !reflect.DeepEqual(req.RowRecordArray[1].VectorData, vectors[1]) {
		t.Errorf("row 1 = %v", req.RowRecordArray[1].VectorData)
	}

	req, err = InsertParam("orders", vectors, []int64{7, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(req.RowIDArray, []int64{7, 8}) {
		t.Errorf("RowIDArray = %v", req.RowIDArray)
	}
}

func TestInsertParam_LengthMismatch(t *testing.T) {
	cases := []struct {
		vecs [][]float32
		ids  []int64
	}{
		{[][]float32{{1}, {2}}, []int64{1}},
		{[][]float32{{1}}, []int64{1, 2, 3}},
	}
	for _, c := range cases {
		req, err := InsertParam("orders", c.vecs, c.ids)
		if req != nil {
			t.Error("request constructed despite mismatch")
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("error = %v, want ErrInvalidParameter", err)
		}
		if !strings.Contains(err.Error(), "length of vectors do not match that of ids") {
			t.Errorf("error = %q", err)
		}
	}
}

func TestInsertAndSearch_IllegalVectors(t *testing.T) {
	batches := [][][]float32{
		{{1, 2}, {}},
		{{1, 2}, {3}},
		{nil},
	}
	for _, vecs := range batches {
		ins, err := InsertParam("orders", vecs, nil)
		if ins != nil || !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("InsertParam(%v) = %v, %v", vecs, ins, err)
		}
		if err != nil && !strings.Contains(err.Error(), "2-dimensional") {
			t.Errorf("error = %q", err)
		}

		sp, err := SearchParam("orders", vecs, nil, 10, 16)
		if sp != nil || !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("SearchParam(%v) = %v, %v", vecs, sp, err)
		}
	}
}

func TestIndex(t *testing.T) {
	got, err := Index(IndexIVFFlat, 4096)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IndexType != int32(IndexIVFFlat) || got.Nlist != 4096 {
		t.Errorf("Index() = %+v", got)
	}
	if _, err := Index(IndexType(0), 10); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestIndexParam(t *testing.T) {
	got, err := IndexParam("orders", map[string]any{"index_type": IndexIVFSQ8, "nlist": 16384})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &wire.IndexParam{
		Status:    wire.SuccessStatus(),
		TableName: "orders",
		Index:     wire.Index{IndexType: int32(IndexIVFSQ8), Nlist: 16384},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IndexParam() = %+v, want %+v", got, want)
	}
}

func TestIndexParam_TypeMismatchBeforeValidation(t *testing.T) {
	// Invalid table name must not be reported: the shape check comes first.
	for _, in := range []any{[]any{"IVFLAT", 10}, nil, "IVFLAT"} {
		_, err := IndexParam("", in)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("IndexParam(%#v) error = %v, want ErrTypeMismatch", in, err)
		}
	}
}

func TestIndexParam_InvalidParameter(t *testing.T) {
	tests := []struct {
		table string
		in    map[string]any
	}{
		{"", map[string]any{"index_type": "FLAT", "nlist": 1}},
		{"orders", map[string]any{"index_type": "FLAT"}},
		{"orders", map[string]any{"index_type": "FLAT", "nlist": 0}},
		{"orders", map[string]any{"index_type": "FLAT", "nlist": 1, "unknown": 1}},
	}
	for _, tt := range tests {
		_, err := IndexParam(tt.table, tt.in)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("IndexParam(%q, %v) error = %v, want ErrInvalidParameter", tt.table, tt.in, err)
		}
	}
}

func TestSearchParam(t *testing.T) {
	got, err := SearchParam("orders", [][]float32{{1, 2}}, []any{[2]string{"2019-05-25", "2019-06-01"}}, 10, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &wire.SearchParam{
		TableName:        "orders",
		QueryRecordArray: []wire.RowRecord{{VectorData: []float32{1, 2}}},
		QueryRangeArray:  []wire.Range{{StartValue: "2019-05-25", EndValue: "2019-06-01"}},
		Topk:             10,
		Nprobe:           16,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchParam() = %+v, want %+v", got, want)
	}
}

func TestSearchParam_NoRangeFilter(t *testing.T) {
	for _, ranges := range [][]any{nil, {}} {
		got, err := SearchParam("orders", [][]float32{{1}}, ranges, 1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.QueryRangeArray != nil {
			t.Errorf("QueryRangeArray = %v, want nil", got.QueryRangeArray)
		}
	}
}

func TestSearchParam_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		ranges []any
		topk   int64
		nprobe int64
	}{
		{"bad range", "orders", []any{[2]string{"x", "y"}}, 1, 1},
		{"bad table", "", nil, 1, 1},
		{"zero topk", "orders", nil, 0, 1},
		{"zero nprobe", "orders", nil, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SearchParam(tt.table, [][]float32{{1}}, tt.ranges, tt.topk, tt.nprobe)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestSearchInFilesParam(t *testing.T) {
	got, err := SearchInFilesParam("orders", [][]float32{{1}}, nil, 5, 8, []string{"1", "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.FileIDArray, []string{"1", "42"}) {
		t.Errorf("FileIDArray = %v", got.FileIDArray)
	}
	base, _ := SearchParam("orders", [][]float32{{1}}, nil, 5, 8)
	if !reflect.DeepEqual(got.SearchParam, *base) {
		t.Errorf("SearchParam = %+v, want %+v", got.SearchParam, *base)
	}

	if _, err := SearchInFilesParam("orders", [][]float32{{}}, nil, 5, 8, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestCmd(t *testing.T) {
	got, err := Cmd("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cmd != "version" {
		t.Errorf("Cmd = %q", got.Cmd)
	}
	if _, err := Cmd(""); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestDeleteByRangeParam(t *testing.T) {
	got, err := DeleteByRangeParam("orders", "2020-01-01", "2020-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := DateRange("2020-01-01", "2020-02-01")
	if got.TableName != "orders" || got.Range != r {
		t.Errorf("DeleteByRangeParam() = %+v", got)
	}

	if _, err := DeleteByRangeParam("orders", "2020-01-01", "soon"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
	if _, err := DeleteByRangeParam("", "2020-01-01", "2020-02-01"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestParamError_As(t *testing.T) {
	_, err := SearchParam("orders", [][]float32{{1}}, nil, 0, 1)
	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not *ParamError", err)
	}
	if pe.Field != "topk" {
		t.Errorf("Field = %q, want topk", pe.Field)
	}
}

func TestTableSchema_HugeFloatDimension(t *testing.T) {
	for _, dim := range []float64{1e20, 1.38e19, -1e20} {
		_, err := TableSchema(map[string]any{"table_name": "t", "dimension": dim})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("dimension %v: error = %v, want ErrInvalidParameter", dim, err)
		}
		if !strings.Contains(err.Error(), "out of range") {
			t.Errorf("dimension %v: error = %q, want out of range", dim, err)
		}
	}
}

func TestInsertAndSearch_DoNotAliasInput(t *testing.T) {
	vecs := [][]float32{{1, 2}}
	ids := []int64{5}

	ins, err := InsertParam("orders", vecs, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, err := SearchParam("orders", vecs, nil, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vecs[0][0] = 99
	ids[0] = 6

	if got := ins.RowRecordArray[0].VectorData; !reflect.DeepEqual(got, []float32{1, 2}) {
		t.Errorf("insert vector = %v, want [1 2]", got)
	}
	if ins.RowIDArray[0] != 5 {
		t.Errorf("insert id = %d, want 5", ins.RowIDArray[0])
	}
	if got := q.QueryRecordArray[0].VectorData; !reflect.DeepEqual(got, []float32{1, 2}) {
		t.Errorf("query vector = %v, want [1 2]", got)
	}
}
