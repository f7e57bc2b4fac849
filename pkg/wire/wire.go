// Package wire holds the request messages of the vector service RPC interface.
//
// The message layout is owned by the server IDL; vecprep only populates it.
// Field names follow the IDL so that the JSON rendering matches what other
// clients put on the wire.
package wire

// Status codes embedded in request messages.
const (
	StatusSuccess int32 = 0

	// StatusReasonClient marks a status produced on the client side.
	StatusReasonClient = "Client"
)

// Status is the error-code envelope carried by some request messages.
type Status struct {
	ErrorCode int32  `json:"error_code"`
	Reason    string `json:"reason"`
}

// SuccessStatus returns the status embedded in client-built requests.
func SuccessStatus() Status {
	return Status{ErrorCode: StatusSuccess, Reason: StatusReasonClient}
}

// TableName addresses a single table.
type TableName struct {
	TableName string `json:"table_name"`
}

// TableSchema describes a table for creation.
type TableSchema struct {
	Status        Status `json:"status"`
	TableName     string `json:"table_name"`
	Dimension     int64  `json:"dimension"`
	IndexFileSize int64  `json:"index_file_size"`
	MetricType    int32  `json:"metric_type"`
}

// Range is a date interval (start, end] in "YYYY-MM-DD" form.
type Range struct {
	StartValue string `json:"start_value"`
	EndValue   string `json:"end_value"`
}

// RowRecord is a single vector.
type RowRecord struct {
	VectorData []float32 `json:"vector_data"`
}

// InsertParam inserts vectors into a table. RowIDArray is nil when the
// server assigns ids.
type InsertParam struct {
	TableName      string      `json:"table_name"`
	RowRecordArray []RowRecord `json:"row_record_array"`
	RowIDArray     []int64     `json:"row_id_array,omitempty"`
}

// Index describes an index build.
type Index struct {
	IndexType int32 `json:"index_type"`
	Nlist     int64 `json:"nlist"`
}

// IndexParam requests an index build on a table.
type IndexParam struct {
	Status    Status `json:"status"`
	TableName string `json:"table_name"`
	Index     Index  `json:"index"`
}

// SearchParam is a nearest-neighbor query. QueryRangeArray is nil when no
// date filter applies.
type SearchParam struct {
	TableName        string      `json:"table_name"`
	QueryRecordArray []RowRecord `json:"query_record_array"`
	QueryRangeArray  []Range     `json:"query_range_array,omitempty"`
	Topk             int64       `json:"topk"`
	Nprobe           int64       `json:"nprobe"`
}

// SearchInFilesParam scopes a search to explicit index files.
type SearchInFilesParam struct {
	FileIDArray []string    `json:"file_id_array"`
	SearchParam SearchParam `json:"search_param"`
}

// Command is an administrative command.
type Command struct {
	Cmd string `json:"cmd"`
}

// DeleteByRangeParam deletes the vectors of a table inside a date range.
type DeleteByRangeParam struct {
	Range     Range  `json:"range"`
	TableName string `json:"table_name"`
}
