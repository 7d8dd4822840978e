package config

import (
	"log"

	"github.com/gookit/config/v2"
	"github.com/gookit/config/v2/json"
	"github.com/gookit/config/v2/toml"
	"github.com/gookit/config/v2/yaml"
)

type Config struct {
	*config.Config
}

func MustLoad(paths ...string) *Config {
	c, err := Load(paths...)
	if err != nil {
		log.Fatal(err)
	}
	return c
}

// Load reads json/toml/yaml config files. Env placeholders and struct
// defaults are resolved; the struct tag is "config".
func Load(paths ...string) (c *Config, err error) {
	newConfig := config.New("serde").WithOptions(
		config.WithTagName("config"),
		config.ParseEnv,
		config.ParseDefault,
	)

	c = &Config{newConfig}
	c.AddDriver(json.Driver)
	c.AddDriver(toml.Driver)
	c.AddDriver(yaml.Driver)

	err = c.LoadFiles(paths...)
	return
}

// Bind loads files and decodes the named section into target.
func Bind(target any, key string, paths ...string) error {
	c, err := Load(paths...)
	if err != nil {
		return err
	}
	return c.BindStruct(key, target)
}
