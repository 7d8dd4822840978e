package main

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/arklib/serde"
	"github.com/arklib/serde/util"
)

type benchUser struct {
	ID      int64
	Name    string
	Email   string
	Tags    []string
	Balance float64
	Active  bool
}

var benchSample = benchUser{
	ID:      42,
	Name:    "gopher",
	Email:   "gopher@example.com",
	Tags:    []string{"a", "b", "c"},
	Balance: 13.37,
	Active:  true,
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench [rounds]",
		Short: "round-trip a sample struct through every available strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			rounds := 10000
			if len(args) > 0 {
				rounds = cast.ToInt(args[0])
			}
			if rounds <= 0 {
				return fmt.Errorf("rounds must be positive, got %d", rounds)
			}

			env := serde.DetectEnv()
			configs := map[string]*serde.Config{
				"array": {Engine: serde.EngineStandard, Layout: serde.LayoutArray},
				"map":   {Engine: serde.EngineStandard, Layout: serde.LayoutMap},
			}
			if env.Codegen {
				configs["codegen"] = &serde.Config{Engine: serde.EngineCodegen}
			}

			results := make(map[string]time.Duration, len(configs))
			for name, c := range configs {
				provider, err := serde.New(c)
				if err != nil {
					return err
				}

				session := serde.NewMemorySession()
				ser, err := serde.GetTyped[benchUser](provider, session)
				if err != nil {
					return err
				}

				results[name] = util.ExecTime(name, func() {
					for i := 0; i < rounds; i++ {
						data, err := ser.Encode(&benchSample)
						if err != nil {
							panic(err)
						}
						var out benchUser
						if err := ser.Decode(data, &out); err != nil {
							panic(err)
						}
					}
				})
			}

			fmt.Printf("\nrounds: %d\n", rounds)
			util.ForEachMapBySort(results, func(name string, elapsed time.Duration) {
				fmt.Printf("%-8s %v (%v/op)\n", name, elapsed, elapsed/time.Duration(rounds))
			})
			return nil
		},
	}
}
