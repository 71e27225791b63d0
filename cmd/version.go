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
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/ghodss/yaml"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/spf13/cobra"
)

// Injected with -ldflags "-X github.com/kaleido-io/ticketanchor/cmd.BuildCommit=..."
var (
	BuildDate            string
	BuildCommit          string
	BuildVersionOverride string
)

type Info struct {
	Version string `json:"version,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Go      string `json:"go,omitempty"`
	License string `json:"license,omitempty"`
}

// setBuildInfo falls back to the module version stamped by go install
func setBuildInfo(info *Info, bi *debug.BuildInfo, ok bool) {
	if !ok || bi == nil {
		return
	}
	info.Version = bi.Main.Version
}

func versionInfo() *Info {
	info := &Info{
		Version: BuildVersionOverride,
		Commit:  BuildCommit,
		Date:    BuildDate,
		Go:      runtime.Version(),
		License: "Apache-2.0",
	}
	if info.Version == "" {
		bi, ok := debug.ReadBuildInfo()
		setBuildInfo(info, bi, ok)
	}
	return info
}

// formatVersion renders info as "json" or "yaml". ghodss/yaml goes through the
// json tags, so both formats share the field names.
func formatVersion(info *Info, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(info, "", "  ")
	case "yaml":
		return yaml.Marshal(info)
	}
	return nil, i18n.NewError(context.Background(), i18n.MsgInvalidOutputOption, format)
}

func newVersionCommand() *cobra.Command {
	var short bool
	var format string
	c := &cobra.Command{
		Use:   "version",
		Short: "Prints the version info",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := versionInfo()
			if short {
				fmt.Fprintln(c.OutOrStdout(), info.Version)
				return nil
			}
			b, err := formatVersion(info, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), string(b))
			return nil
		},
	}
	c.Flags().BoolVarP(&short, "short", "s", false, "Prints only the version number")
	c.Flags().StringVarP(&format, "output", "o", "json", `Output format ("yaml"|"json")`)
	return c
}

func init() {
	rootCmd.AddCommand(newVersionCommand())
}
