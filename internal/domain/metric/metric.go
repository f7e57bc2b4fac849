package metric

import (
	"fmt"
	"strings"
)

// Type is the distance function used for nearest-neighbor search.
type Type int32

// Metric type constants. Values match the server enum.
const (
	Invalid Type = 0
	// L2 is squared Euclidean distance.
	L2 Type = 1
	// IP is inner product.
	IP Type = 2
)

// Default is applied when a schema omits the metric type.
const Default = L2

var names = map[Type]string{
	L2: "L2",
	IP: "IP",
}

// IsValid checks if the metric type is one the server accepts.
func (t Type) IsValid() bool {
	_, ok := names[t]
	return ok
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("MetricType(%d)", int32(t))
}

// Parse resolves a metric name ("L2", "ip", ...).
func Parse(s string) (Type, error) {
	for t, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return Invalid, fmt.Errorf("unknown metric type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
