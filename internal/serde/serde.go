package serde

import (
	jsoniter "github.com/json-iterator/go"
)

// DigestSerializer turns a value into a stable byte form suitable for plan
// digest computation. Equal inputs must always serialize to equal bytes -
// the optimizer compares these bytes to decide whether two scans of an
// anonymous datasource are the same scan.
type DigestSerializer interface {
	SerializeForDigest(v any) ([]byte, error)
}

// JSONSerializer implements DigestSerializer with deterministic JSON output
type JSONSerializer struct {
	api jsoniter.API
}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{
		// SortMapKeys keeps the output stable across runs and processes
		api: jsoniter.Config{
			SortMapKeys: true,
			EscapeHTML:  false,
		}.Froze(),
	}
}

func (s *JSONSerializer) SerializeForDigest(v any) ([]byte, error) {
	return s.api.Marshal(v)
}
