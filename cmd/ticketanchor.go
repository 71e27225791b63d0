// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghodss/yaml"
	"github.com/kaleido-io/ticketanchor/internal/apiserver"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/orchestrator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "ticketanchor",
	Short: "Ride ticket issuance with Merkle batch anchoring",
	Long: `Issues signed ride tickets, seals them into Merkle batches, and anchors
each batch root on a ledger so tickets can be verified offline`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var cfgFile string

var showConfigCommand = &cobra.Command{
	Use:     "showconfig",
	Aliases: []string{"showconf"},
	Short:   "List the configuration options",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadConfig(cfgFile); err != nil {
			return i18n.WrapError(context.Background(), err, i18n.MsgConfigFailed, err)
		}
		// Registers the plugin keys, so they are included in the listing
		_ = getOrchestrator()
		apiserver.InitConfig()
		conf := make(map[string]interface{}, len(config.GetKnownKeys()))
		for _, k := range config.GetKnownKeys() {
			conf[k] = config.Get(config.RootKey(k))
		}
		b, err := yaml.Marshal(conf)
		if err != nil {
			return err
		}
		fmt.Print(string(b))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(showConfigCommand)
}

// _utOrchestrator allows the unit tests to inject a mock orchestrator
var _utOrchestrator orchestrator.Orchestrator

func getOrchestrator() orchestrator.Orchestrator {
	if _utOrchestrator != nil {
		return _utOrchestrator
	}
	return orchestrator.NewOrchestrator()
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging() {
	log.SetLevel(config.GetString(config.LogLevel))
	log.SetFormatting(log.Formatting{
		DisableColor:    !config.GetBool(config.LogColor),
		TimestampFormat: config.GetString(config.LogTimeFormat),
		UTC:             config.GetBool(config.LogUTC),
	})
}

func run() error {

	// Read the configuration first of all
	err := config.ReadConfig(cfgFile)

	// Setup logging after reading config (even if failed), to output header correctly
	setupLogging()
	ctx, cancelCtx := context.WithCancel(context.Background())
	ctx = log.WithLogger(ctx, logrus.WithField("pid", os.Getpid()))
	log.L(ctx).Infof("ticketanchor")
	log.L(ctx).Infof("© Copyright 2021 Kaleido, Inc.")

	// Deferred error return from reading config
	if err != nil {
		cancelCtx()
		return i18n.WrapError(ctx, err, i18n.MsgConfigFailed, err)
	}

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	o := getOrchestrator()
	apiserver.InitConfig()
	if err = o.Init(ctx, cancelCtx); err != nil {
		cancelCtx()
		return err
	}
	if err = o.Start(); err != nil {
		cancelCtx()
		o.WaitStop()
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- apiserver.NewAPIServer().Serve(ctx, o)
	}()

	select {
	case sig := <-sigs:
		log.L(ctx).Infof("Shutting down due to %s", sig.String())
		cancelCtx()
		<-errChan
		o.WaitStop()
		return nil
	case err = <-errChan:
		cancelCtx()
		o.WaitStop()
		return err
	}
}
