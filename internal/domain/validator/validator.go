// Package validator checks single request fields in isolation.
// Cross-field rules (ids vs vectors length, ...) belong to the callers.
package validator

import (
	"errors"
	"math"
	"regexp"

	playground "github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/vecprep/internal/domain"
)

// Field names understood by Check.
const (
	FieldTableName     = "table_name"
	FieldDimension     = "dimension"
	FieldIndexFileSize = "index_file_size"
	FieldMetricType    = "metric_type"
	FieldIndexType     = "index_type"
	FieldNList         = "nlist"
	FieldTopK          = "topk"
	FieldNProbe        = "nprobe"
	FieldIDs           = "ids"
	FieldCmd           = "cmd"
)

// MaxTableNameLength is the longest table name the server accepts.
const MaxTableNameLength = 255

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Tags run by the field validator. tablename is registered in newValidate.
const (
	tableNameTag = "required,max=255,tablename"
	positiveTag  = "gt=0"
	idsTag       = "min=1,dive,gte=0"
	cmdTag       = "required"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	err := v.RegisterValidation("tablename", func(fl playground.FieldLevel) bool {
		return tableNameRegex.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// firstFailure returns the first failed tag of a Var call.
func firstFailure(err error) (playground.FieldError, bool) {
	var ve playground.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0], true
	}
	return nil, false
}

// Enum is implemented by metric and index types.
type Enum interface {
	IsValid() bool
}

// Param is a single field to check.
type Param struct {
	Field string
	Value any
}

// P is shorthand for Param{field, value}.
func P(field string, value any) Param {
	return Param{Field: field, Value: value}
}

// CheckAll checks params in order and returns the first failure.
func CheckAll(params ...Param) error {
	for _, p := range params {
		if err := Check(p.Field, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Check validates value as the named field.
func Check(field string, value any) error {
	switch field {
	case FieldTableName:
		return checkTableName(value)
	case FieldDimension, FieldIndexFileSize, FieldNList, FieldTopK, FieldNProbe:
		return checkPositive(field, value)
	case FieldMetricType, FieldIndexType:
		return checkEnum(field, value)
	case FieldIDs:
		return checkIDs(value)
	case FieldCmd:
		return checkCmd(value)
	default:
		return domain.NewParamError(field, "unknown parameter")
	}
}

func checkTableName(value any) error {
	name, ok := value.(string)
	if !ok {
		return domain.NewParamError(FieldTableName, "must be a string, got %T", value)
	}
	err := validate.Var(name, tableNameTag)
	if err == nil {
		return nil
	}
	fe, ok := firstFailure(err)
	if !ok {
		return domain.NewParamError(FieldTableName, "%v", err)
	}
	switch fe.Tag() {
	case "required":
		return domain.NewParamError(FieldTableName, "is required")
	case "max":
		return domain.NewParamError(FieldTableName, "too long (max %d)", MaxTableNameLength)
	default:
		return domain.NewParamError(FieldTableName,
			"%q must start with a letter or underscore and contain only letters, digits and underscores", name)
	}
}

func checkPositive(field string, value any) error {
	n, ok := toInt64(value)
	if !ok {
		return domain.NewParamError(field, "must be an integer, got %T", value)
	}
	if err := validate.Var(value, positiveTag); err != nil {
		return domain.NewParamError(field, "must be positive, got %d", n)
	}
	return nil
}

func checkEnum(field string, value any) error {
	e, ok := value.(Enum)
	if !ok {
		return domain.NewParamError(field, "unsupported type %T", value)
	}
	if !e.IsValid() {
		return domain.NewParamError(field, "unknown value %v", value)
	}
	return nil
}

func checkIDs(value any) error {
	ids, ok := value.([]int64)
	if !ok {
		return domain.NewParamError(FieldIDs, "must be a list of int64, got %T", value)
	}
	err := validate.Var(ids, idsTag)
	if err == nil {
		return nil
	}
	fe, ok := firstFailure(err)
	if !ok {
		return domain.NewParamError(FieldIDs, "%v", err)
	}
	if fe.Tag() == "min" {
		return domain.NewParamError(FieldIDs, "must not be empty")
	}
	return domain.NewParamError(FieldIDs, "negative id %v", fe.Value())
}

func checkCmd(value any) error {
	cmd, ok := value.(string)
	if !ok {
		return domain.NewParamError(FieldCmd, "must be a string, got %T", value)
	}
	if err := validate.Var(cmd, cmdTag); err != nil {
		return domain.NewParamError(FieldCmd, "is required")
	}
	return nil
}

// IsLegalArray reports whether v is a usable vector: non-empty and finite.
func IsLegalArray(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return clampUint(uint64(n)), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return clampUint(n), true
	default:
		return 0, false
	}
}

func clampUint(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}
