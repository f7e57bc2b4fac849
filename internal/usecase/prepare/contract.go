package prepare

import "google.golang.org/protobuf/proto"

// Converter renders a built wire request in a backend's native form.
type Converter interface {
	Convert(req any) (proto.Message, error)
}
