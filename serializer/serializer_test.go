package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSerializers(t *testing.T) {
	type payload struct {
		Name  string
		Count int
	}
	in := payload{Name: "x", Count: 3}

	for name, ser := range map[string]Serializer{
		"sonic":  NewSonic(),
		"gojson": NewGoJson(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := ser.Encode(&in)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"Name"`)

			var out payload
			require.NoError(t, ser.Decode(data, &out))
			assert.Equal(t, in, out)
		})
	}
}
