package serde

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arklib/serde/errx"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		env    Env
		want   Strategy
	}{
		{"codegen wins over array layout", Config{Layout: LayoutArray}, Env{Codegen: true}, StrategyCodegen},
		{"codegen wins over map layout", Config{Layout: LayoutMap}, Env{Codegen: true}, StrategyCodegen},
		{"map layout without codegen", Config{Layout: LayoutMap}, Env{}, StrategyMap},
		{"array layout without codegen", Config{Layout: LayoutArray}, Env{}, StrategyArray},
		{"default layout is array", Config{}, Env{}, StrategyArray},
		{"standard engine opts out of codegen", Config{Engine: EngineStandard, Layout: LayoutMap}, Env{Codegen: true}, StrategyMap},
		{"codegen engine falls back without support", Config{Engine: EngineCodegen, Layout: LayoutMap}, Env{}, StrategyMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectStrategy(&tt.config, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectStrategyUnsupported(t *testing.T) {
	_, err := SelectStrategy(&Config{Engine: "emit"}, Env{})
	require.ErrorIs(t, err, errx.ErrUnsupportedConfig)
	assert.Contains(t, err.Error(), "emit")

	_, err = SelectStrategy(&Config{Layout: "tuple"}, Env{})
	require.ErrorIs(t, err, errx.ErrUnsupportedConfig)
	assert.Contains(t, err.Error(), "tuple")

	_, err = SelectStrategy(nil, Env{})
	require.ErrorIs(t, err, errx.ErrNilArgument)
}

func TestSelectStrategyDeterministic(t *testing.T) {
	c := &Config{Engine: EngineAuto, Layout: LayoutMap}
	env := Env{Codegen: true}

	first, err := SelectStrategy(c, env)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Strategy, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := SelectStrategy(c, env)
				if err != nil {
					return
				}
				results[i] = got
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, first, got)
	}
}
