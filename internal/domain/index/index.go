package index

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/domain/decode"
	"github.com/kailas-cloud/vecprep/internal/domain/validator"
)

// Type is the index algorithm built over a table.
type Type int32

// Index type constants. Values match the server enum.
const (
	Invalid Type = 0
	Flat    Type = 1
	IVFFlat Type = 2
	IVFSQ8  Type = 3
	MixNSG  Type = 4
	IVFSQ8H Type = 5
)

var names = map[Type]string{
	Flat:    "FLAT",
	IVFFlat: "IVFLAT",
	IVFSQ8:  "IVF_SQ8",
	MixNSG:  "MIX_NSG",
	IVFSQ8H: "IVF_SQ8H",
}

// IsValid checks if the index type is one the server accepts.
func (t Type) IsValid() bool {
	_, ok := names[t]
	return ok
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("IndexType(%d)", int32(t))
}

// ParseType resolves an index type name ("IVFLAT", "ivf_sq8", ...).
func ParseType(s string) (Type, error) {
	for t, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return Invalid, fmt.Errorf("unknown index type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Spec is a validated index definition (immutable value object).
type Spec struct {
	indexType Type
	nlist     int64
}

// New validates and creates a Spec.
func New(t Type, nlist int64) (Spec, error) {
	if err := validator.CheckAll(
		validator.P(validator.FieldIndexType, t),
		validator.P(validator.FieldNList, nlist),
	); err != nil {
		return Spec{}, err
	}
	return Spec{indexType: t, nlist: nlist}, nil
}

// params is the mapping form of an index definition.
type params struct {
	IndexType *Type  `mapstructure:"index_type"`
	NList     *int64 `mapstructure:"nlist"`
}

// FromMap decodes and validates the mapping form {index_type, nlist}.
// Both keys are required; unknown keys are rejected.
func FromMap(m map[string]any) (Spec, error) {
	var p params
	if err := decode.Strict(m, &p); err != nil {
		return Spec{}, domain.NewParamError("index_param", "%v", err)
	}
	if p.IndexType == nil {
		return Spec{}, domain.NewParamError(validator.FieldIndexType, "is required")
	}
	if p.NList == nil {
		return Spec{}, domain.NewParamError(validator.FieldNList, "is required")
	}
	return New(*p.IndexType, *p.NList)
}

// Type returns the index algorithm.
func (s Spec) Type() Type { return s.indexType }

// NList returns the number of clusters.
func (s Spec) NList() int64 { return s.nlist }
