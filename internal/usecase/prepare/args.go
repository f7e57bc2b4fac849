package prepare

import (
	"github.com/kailas-cloud/vecprep"
	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/domain/decode"
	"github.com/kailas-cloud/vecprep/pkg/wire"
)

// Args is the union of builder arguments, decoded from JSON or YAML.
// Each operation reads only the fields it needs.
type Args struct {
	TableName  string      `json:"table_name,omitempty" yaml:"table_name"`
	Param      any         `json:"param,omitempty" yaml:"param"`
	IndexParam any         `json:"index_param,omitempty" yaml:"index_param"`
	IndexType  any         `json:"index_type,omitempty" yaml:"index_type"`
	NList      int64       `json:"nlist,omitempty" yaml:"nlist"`
	Start      any         `json:"start,omitempty" yaml:"start"`
	End        any         `json:"end,omitempty" yaml:"end"`
	Ranges     []any       `json:"ranges,omitempty" yaml:"ranges"`
	Vectors    [][]float32 `json:"vectors,omitempty" yaml:"vectors"`
	IDs        []int64     `json:"ids,omitempty" yaml:"ids"`
	TopK       int64       `json:"topk,omitempty" yaml:"topk"`
	NProbe     int64       `json:"nprobe,omitempty" yaml:"nprobe"`
	FileIDs    []string    `json:"file_ids,omitempty" yaml:"file_ids"`
	Cmd        string      `json:"cmd,omitempty" yaml:"cmd"`
}

// normalizeRanges rewrites object-shaped ranges into the forms the builders
// take: {start_value, end_value} is a typed range, {start, end} is a pair.
func normalizeRanges(ranges []any) ([]any, error) {
	if ranges == nil {
		return nil, nil
	}
	out := make([]any, len(ranges))
	for i, r := range ranges {
		m, ok := r.(map[string]any)
		if !ok {
			out[i] = r
			continue
		}
		if _, typed := m["start_value"]; typed {
			s, ok1 := m["start_value"].(string)
			e, ok2 := m["end_value"].(string)
			if !ok1 || !ok2 {
				return nil, domain.NewTypeError("ranges", "string start_value and end_value", r)
			}
			out[i] = wire.Range{StartValue: s, EndValue: e}
			continue
		}
		out[i] = vecprep.Pair{Start: m["start"], End: m["end"]}
	}
	return out, nil
}

// indexType resolves a name ("IVFLAT") or a number into an index type.
func indexType(v any) (vecprep.IndexType, error) {
	var p struct {
		IndexType vecprep.IndexType `mapstructure:"index_type"`
	}
	if err := decode.Lenient(map[string]any{"index_type": v}, &p); err != nil {
		return 0, domain.NewParamError("index_type", "%v", err)
	}
	return p.IndexType, nil
}
