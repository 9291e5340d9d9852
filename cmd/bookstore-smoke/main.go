/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/bookstore/pkg/constants"
	"github.com/unikorn-cloud/bookstore/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

var errScenariosFailed = errors.New("scenarios failed")

type options struct {
	baseURL        string
	scenarios      []string
	requestTimeout time.Duration
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", "", "BookStore base URL, overrides BOOKSTORE_BASE_URL.")
	f.StringArrayVar(&o.scenarios, "scenario", nil, "Scenario to run, may be repeated.  Defaults to all scenarios.")
	f.DurationVar(&o.requestTimeout, "request-timeout", 0, "Per request timeout, overrides REQUEST_TIMEOUT.")
}

// config loads the harness configuration and applies flag overrides.
func (o *options) config() (*api.TestConfig, error) {
	if o.baseURL != "" {
		if err := os.Setenv("BOOKSTORE_BASE_URL", o.baseURL); err != nil {
			return nil, err
		}
	}

	config, err := api.LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if o.requestTimeout != 0 {
		config.RequestTimeout = o.requestTimeout

		if err := config.Validate(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (o *options) selected() ([]api.Scenario, error) {
	if len(o.scenarios) == 0 {
		return api.Scenarios(), nil
	}

	scenarios := make([]api.Scenario, 0, len(o.scenarios))

	for _, name := range o.scenarios {
		scenario, err := api.LookupScenario(name)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

func run(ctx context.Context, o *options) error {
	log := log.FromContext(ctx)

	config, err := o.config()
	if err != nil {
		return err
	}

	scenarios, err := o.selected()
	if err != nil {
		return err
	}

	store := api.NewBookStore(api.NewAPIClient(config))

	var failed int

	for _, scenario := range scenarios {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		scenarioCtx, cancel := context.WithTimeout(ctx, config.TestTimeout)

		start := time.Now()
		err := scenario.Run(scenarioCtx, store, config)

		cancel()

		if err != nil {
			failed++

			log.Error(err, "scenario failed", "scenario", scenario.Name, "duration", time.Since(start))

			continue
		}

		log.Info("scenario passed", "scenario", scenario.Name, "duration", time.Since(start))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errScenariosFailed, failed, len(scenarios))
	}

	return nil
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	zapOptions := zap.Options{
		Development: true,
	}

	zapOptions.BindFlags(goflag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("init")
	logger.Info("smoke test starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx := log.IntoContext(signals.SetupSignalHandler(), log.Log.WithName("smoke"))

	if err := run(ctx, &o); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
