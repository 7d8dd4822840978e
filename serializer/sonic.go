package serializer

import "github.com/bytedance/sonic"

// Sonic is the codegen-backed serializer. On supported architectures
// sonic compiles per-type encoders at runtime; elsewhere it degrades to
// its reflection path, so this type stays usable everywhere even though
// strategy selection only picks it when codegen is available.
type Sonic struct {
	api sonic.API
}

func NewSonic() *Sonic {
	return &Sonic{api: sonic.ConfigDefault}
}

func (s *Sonic) Encode(val any) ([]byte, error) {
	return s.api.Marshal(val)
}

func (s *Sonic) Decode(data []byte, val any) error {
	return s.api.Unmarshal(data, val)
}
