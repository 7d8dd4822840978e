package serde

import "github.com/arklib/serde/errx"

// Strategy is a serializer construction technology. Exactly one strategy is
// active for a given configuration and environment.
type Strategy uint8

const (
	// StrategyArray encodes struct fields positionally.
	StrategyArray Strategy = iota + 1
	// StrategyMap encodes struct fields keyed by name.
	StrategyMap
	// StrategyCodegen uses runtime code generation; preferred whenever the
	// environment supports it.
	StrategyCodegen
)

func (s Strategy) String() string {
	switch s {
	case StrategyArray:
		return "array"
	case StrategyMap:
		return "map"
	case StrategyCodegen:
		return "codegen"
	default:
		return "unknown"
	}
}

// Engine values accepted by Config.Engine.
const (
	EngineAuto     = "auto"
	EngineCodegen  = "codegen"
	EngineStandard = "standard"
)

// Layout values accepted by Config.Layout.
const (
	LayoutArray = "array"
	LayoutMap   = "map"
)

// SelectStrategy maps a configuration to its strategy. Pure and
// deterministic: the same config and env always yield the same strategy.
// Codegen takes precedence over the layout choice when the environment
// supports it, unless the engine is pinned to "standard". Unknown engine
// or layout values fail with errx.ErrUnsupportedConfig.
func SelectStrategy(c *Config, env Env) (Strategy, error) {
	if c == nil {
		return 0, errx.NilArgument("config")
	}

	switch c.Engine {
	case "", EngineAuto, EngineCodegen:
		if env.Codegen {
			return StrategyCodegen, nil
		}
	case EngineStandard:
	default:
		return 0, errx.UnsupportedConfig("engine %q", c.Engine)
	}

	switch c.Layout {
	case LayoutMap:
		return StrategyMap, nil
	case "", LayoutArray:
		return StrategyArray, nil
	default:
		return 0, errx.UnsupportedConfig("layout %q", c.Layout)
	}
}
