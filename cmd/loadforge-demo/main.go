// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is a thin CLI exercising the loadforge embedding API
// end-to-end. It is not part of the core library: the core has no wire
// format, no persisted state layout, and no CLI surface of its own.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loadforge/aggregate"
	"loadforge/aggregate/storage"
	"loadforge/aggregate/timeline"
	"loadforge/clock"
	"loadforge/limit"
	"loadforge/measurer"
	"loadforge/metric"
	"loadforge/runner"
	"loadforge/scenario"
	"loadforge/status"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "loadforge-demo",
		Short: "Run a synthetic load test against an in-process fake target",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(v, configFile); err != nil {
				return err
			}
			return runDemo(v)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (optional; flags and LOADFORGE_* env vars override it)")

	flags := cmd.Flags()
	flags.Int("virtual-users", 10, "number of concurrent virtual users")
	flags.Duration("duration", 5*time.Second, "how long the run lasts before the MaxDuration limiter shuts it down")
	flags.Int("concurrency-limit", 20, "max in-flight operations before a virtual user waits")
	flags.Duration("wait", 5*time.Millisecond, "how long a virtual user waits when the concurrency limit is hit")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("LOADFORGE")
	v.AutomaticEnv()

	return cmd
}

// loadConfigFile merges a YAML config file into v, if one is
// configured. With an explicit --config path, a missing/unreadable
// file is an error; without one, the conventional loadforge-demo.yaml
// lookup in the working directory is optional and silently skipped
// when absent.
func loadConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		return v.ReadInConfig()
	}

	v.SetConfigName("loadforge-demo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func runDemo(v *viper.Viper) error {
	realClock := clock.Real
	settings := aggregate.NewSettings(realClock).WithWindow(100 * time.Millisecond).WithScale(aggregate.Milliseconds)
	builder := timeline.NewBuilder[metric.StringMetric](storage.NewHashMap[metric.StringMetric](), settings)

	realtime := status.NewRealtime()
	limiter := limit.NewCompound(
		limit.Concurrency{Max: uint64(v.GetInt("concurrency-limit")), WaitFor: v.GetDuration("wait")},
		limit.NewMaxDuration(realClock, v.GetDuration("duration")),
	)

	cfg := runner.Config[metric.StringMetric, *storage.HashMap[metric.StringMetric]]{
		VirtualUsers:    v.GetInt("virtual-users"),
		Clock:           realClock,
		Limiter:         limiter,
		Status:          realtime,
		NewScenario:     newFakeCheckoutScenario,
		TimelineBuilder: builder,
		MeasurerTimeout: 200 * time.Millisecond,
	}

	driver := runner.New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("duration")+time.Second)
	defer cancel()

	canonical := driver.Run(ctx)
	total, buckets := canonical.Flush()

	fmt.Printf("requests: %d  errors: %d  p99(ms): %d\n",
		total.Storage.Value("checkout").TotalCount(),
		total.Errors,
		total.Storage.Value("checkout").ValueAtQuantile(99),
	)
	fmt.Printf("buckets recorded: %d\n", len(buckets))
	return nil
}

// newFakeCheckoutScenario simulates a flaky downstream call: most
// iterations succeed quickly, a fraction fail.
func newFakeCheckoutScenario() scenario.Scenario[metric.StringMetric, *storage.HashMap[metric.StringMetric]] {
	return scenario.Func[metric.StringMetric, *storage.HashMap[metric.StringMetric]](
		func(ctx context.Context, m *measurer.Measurer[metric.StringMetric, *storage.HashMap[metric.StringMetric]]) error {
			_, err := measurer.TryMeasure[metric.StringMetric, *storage.HashMap[metric.StringMetric], struct{}](
				m, ctx, "checkout", func(ctx context.Context) (struct{}, error) {
					time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
					if rand.Intn(20) == 0 {
						return struct{}{}, fmt.Errorf("downstream unavailable")
					}
					return struct{}{}, nil
				})
			return err
		})
}
