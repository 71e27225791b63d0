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
	"bytes"
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runVersion(t *testing.T, args ...string) (string, error) {
	c := newVersionCommand()
	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestVersionJSONByDefault(t *testing.T) {
	BuildCommit = "0f1e2d"
	defer func() { BuildCommit = "" }()

	out, err := runVersion(t)
	assert.NoError(t, err)
	var info Info
	assert.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "0f1e2d", info.Commit)
	assert.Equal(t, runtime.Version(), info.Go)
	assert.Equal(t, "Apache-2.0", info.License)
}

func TestVersionYAML(t *testing.T) {
	BuildVersionOverride = "v0.3.0"
	defer func() { BuildVersionOverride = "" }()

	out, err := runVersion(t, "-o", "yaml")
	assert.NoError(t, err)
	assert.Contains(t, out, "version: v0.3.0\n")
}

func TestVersionShort(t *testing.T) {
	BuildVersionOverride = "v0.3.0"
	defer func() { BuildVersionOverride = "" }()

	out, err := runVersion(t, "--short")
	assert.NoError(t, err)
	assert.Equal(t, "v0.3.0\n", out)
}

func TestVersionBadOutput(t *testing.T) {
	_, err := runVersion(t, "-o", "xml")
	assert.Regexp(t, "TA10199.*xml", err)
}

func TestVersionRegisteredOnRoot(t *testing.T) {
	rootCmd.SetArgs([]string{"version", "-s"})
	defer rootCmd.SetArgs([]string{})
	assert.NoError(t, rootCmd.Execute())
}

func TestFormatVersionYAMLFields(t *testing.T) {
	b, err := formatVersion(&Info{Version: "v1.2.3", Commit: "abc123"}, "yaml")
	assert.NoError(t, err)
	assert.Equal(t, "commit: abc123\nversion: v1.2.3\n", string(b))
}

func TestSetBuildInfo(t *testing.T) {
	info := &Info{}
	setBuildInfo(info, &debug.BuildInfo{Main: debug.Module{Version: "v1.0.0"}}, true)
	assert.Equal(t, "v1.0.0", info.Version)

	info = &Info{}
	setBuildInfo(info, nil, false)
	assert.Empty(t, info.Version)
}
