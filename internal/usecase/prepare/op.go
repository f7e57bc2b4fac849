package prepare

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/vecprep/internal/domain"
)

// Op names a request builder.
type Op string

// Supported operations.
const (
	OpTableName     Op = "table_name"
	OpTableSchema   Op = "table_schema"
	OpRange         Op = "range"
	OpRanges        Op = "ranges"
	OpInsert        Op = "insert"
	OpIndex         Op = "index"
	OpIndexParam    Op = "index_param"
	OpSearch        Op = "search"
	OpSearchInFiles Op = "search_in_files"
	OpCmd           Op = "cmd"
	OpDeleteByRange Op = "delete_by_range"
)

// Ops lists every supported operation in display order.
var Ops = []Op{
	OpTableName, OpTableSchema, OpRange, OpRanges, OpInsert, OpIndex,
	OpIndexParam, OpSearch, OpSearchInFiles, OpCmd, OpDeleteByRange,
}

// ParseOp resolves an operation name.
func ParseOp(s string) (Op, error) {
	op := Op(s)
	if !slices.Contains(Ops, op) {
		return "", fmt.Errorf("%w: unknown operation %q", domain.ErrUnsupported, s)
	}
	return op, nil
}
