package main

import (
	"fmt"

	"github.com/gookit/goutil/dump"
	"github.com/spf13/cobra"

	"github.com/arklib/serde"
	"github.com/arklib/serde/config"
)

func loadConfig() (*serde.Config, error) {
	c := new(serde.Config)
	if cfgFile == "" {
		return c, nil
	}
	if err := config.Bind(c, "serde", cfgFile); err != nil {
		return nil, err
	}
	return c, nil
}

func newStrategyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategy",
		Short: "resolve the active serializer strategy for a config",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}

			env := serde.DetectEnv()
			strategy, err := serde.SelectStrategy(c, env)
			if err != nil {
				return err
			}

			dump.P(c, env)
			fmt.Printf("strategy: %s\n", strategy)
			return nil
		},
	}
}
