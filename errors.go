package vecprep

import "github.com/kailas-cloud/vecprep/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTypeMismatch     = domain.ErrTypeMismatch
	ErrInvalidParameter = domain.ErrInvalidParameter
)

// ParamError carries the field that failed validation.
// Use errors.As() to extract it.
type ParamError = domain.ParamError

// TypeError carries the expected and actual argument types.
type TypeError = domain.TypeError
