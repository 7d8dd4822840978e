package main

import (
	"log"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "serde",
		Short: "serializer provisioning toolbox",
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (json/yaml/toml)")
	root.AddCommand(newStrategyCmd(), newBenchCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
