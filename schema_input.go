package vecprep

import (
	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/pkg/wire"
)

// SchemaInput is either a prebuilt schema or a field mapping.
// It is resolved once at the call boundary by ParseSchemaInput.
type SchemaInput interface {
	schemaInput()
}

// PrebuiltSchema passes an already-built schema through unchanged.
type PrebuiltSchema struct {
	Schema *wire.TableSchema
}

// SchemaFields is the mapping form: table_name (or name) and dimension are
// required, index_file_size and metric_type are optional.
type SchemaFields map[string]any

func (PrebuiltSchema) schemaInput() {}
func (SchemaFields) schemaInput()   {}

// ParseSchemaInput classifies a loosely-typed schema argument.
func ParseSchemaInput(v any) (SchemaInput, error) {
	switch x := v.(type) {
	case SchemaInput:
		if p, ok := x.(PrebuiltSchema); ok && p.Schema == nil {
			return nil, domain.NewTypeError("table_schema", "TableSchema or map[string]any", v)
		}
		return x, nil
	case *wire.TableSchema:
		if x == nil {
			return nil, domain.NewTypeError("table_schema", "TableSchema or map[string]any", v)
		}
		return PrebuiltSchema{Schema: x}, nil
	case wire.TableSchema:
		return PrebuiltSchema{Schema: &x}, nil
	case map[string]any:
		return SchemaFields(x), nil
	default:
		return nil, domain.NewTypeError("table_schema", "TableSchema or map[string]any", v)
	}
}
