package serde

import (
	"errors"
	"reflect"
	"sync"

	"github.com/arklib/serde/errx"
	"github.com/arklib/serde/hook"
	"github.com/arklib/serde/logger"
	"github.com/arklib/serde/serializer"
	"github.com/arklib/serde/util"
	"github.com/arklib/serde/validator"
)

// Config carries the two independent provisioning choices: the construction
// engine and the field layout. It is read at the start of each provisioning
// call and never mutated.
type Config struct {
	// auto | codegen | standard
	Engine string `config:"engine" default:"auto" vd:"omitempty,oneof=auto codegen standard" label:"engine"`
	// array | map
	Layout string `config:"layout" default:"array" vd:"omitempty,oneof=array map" label:"layout"`
}

// BuildEvent describes one completed build attempt, deferred or not.
type BuildEvent struct {
	Type     reflect.Type
	Strategy Strategy
	Deferred bool
	Err      error
}

// Provider provisions serializers. It owns the process-wide delegate cache
// for the untyped path; everything else it holds is immutable after setup.
type Provider struct {
	config     *Config
	env        Env
	log        *logger.Logger
	builders   map[Strategy]Builder
	delegates  delegateCache
	registered sync.Map // reflect.Type -> buildFn
	buildHooks *hook.Hook[BuildEvent]
}

func New(c *Config) (*Provider, error) {
	if c == nil {
		c = &Config{}
	}
	if err := validator.Test(c); err != nil {
		return nil, errx.UnsupportedConfig("%s", err.Error())
	}

	p := &Provider{
		config:     c,
		env:        DetectEnv(),
		builders:   defaultBuilders(),
		buildHooks: hook.Define[BuildEvent](),
	}
	return p, nil
}

func MustNew(c *Config) *Provider {
	p, err := New(c)
	if err != nil {
		panic(err)
	}
	return p
}

// WithEnv pins the environment capabilities, overriding detection.
func (p *Provider) WithEnv(env Env) *Provider {
	p.env = env
	return p
}

func (p *Provider) WithLogger(log *logger.Logger) *Provider {
	p.log = log
	return p
}

// WithBuilder replaces the builder backing a strategy.
func (p *Provider) WithBuilder(s Strategy, b Builder) *Provider {
	p.builders[s] = b
	return p
}

// OnBuild registers an observer called after every build attempt.
func (p *Provider) OnBuild(observers ...hook.Observer[BuildEvent]) *Provider {
	p.buildHooks.Observe(observers...)
	return p
}

// Strategy resolves the active strategy for the provider's configuration.
func (p *Provider) Strategy() (Strategy, error) {
	return SelectStrategy(p.config, p.env)
}

// buildErased is the shared build path behind the typed and untyped
// entry points.
func (p *Provider) buildErased(typ reflect.Type, s Session) (serializer.Serializer, error) {
	strategy, err := SelectStrategy(p.config, p.env)
	if err != nil {
		return nil, err
	}

	builder := p.builders[strategy]
	ser, err := builder.Build(typ, s)

	deferred := false
	if errors.Is(err, serializer.ErrDeferred) {
		db, ok := builder.(DeferredBuilder)
		if !ok {
			return nil, errx.BuildFailed(util.TypeName(typ), "self-referential type needs a deferring builder")
		}
		ser = serializer.NewLazy(func() (serializer.Serializer, error) {
			return db.BuildDeferred(typ, s)
		})
		err = nil
		deferred = true
	}

	p.emitBuild(BuildEvent{Type: typ, Strategy: strategy, Deferred: deferred, Err: err})
	if err != nil {
		return nil, err
	}
	return ser, nil
}

func (p *Provider) emitBuild(ev BuildEvent) {
	if err := p.buildHooks.Emit(&ev); err != nil && p.log != nil {
		p.log.Warn().Err(err).Msg("build hook failed")
	}
	if p.log == nil {
		return
	}
	log := p.log.Debug().
		Str("type", util.TypeName(ev.Type)).
		Stringer("strategy", ev.Strategy).
		Bool("deferred", ev.Deferred)
	if ev.Err != nil {
		log = log.Err(ev.Err)
	}
	log.Msg("serializer build")
}
