package serializer

import "encoding/json"

// GoJson is the map-layout serializer: objects keyed by field name, using
// the standard library encoder. It is the portable fallback when codegen
// is unavailable and map output is requested.
type GoJson struct{}

func NewGoJson() *GoJson {
	return new(GoJson)
}

func (GoJson) Encode(val any) ([]byte, error) {
	return json.Marshal(val)
}

func (GoJson) Decode(data []byte, val any) error {
	return json.Unmarshal(data, val)
}
