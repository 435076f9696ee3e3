// Copyright 2025 the original author or authors.
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

package build

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// tuning mirrors the pipeline tuning flags that may also be supplied
// through a YAML file. Explicitly set flags win over file values.
type tuning struct {
	Tolerance  *float64 `yaml:"tolerance"`
	SnapRadius *float64 `yaml:"snap_radius"`
	MaxRadius  *float64 `yaml:"max_radius"`
	CPU        *uint16  `yaml:"cpu"`
	JoinChains *bool    `yaml:"join_chains"`
}

func loadTuning(flags *pflag.FlagSet) (tuning, error) {
	var t tuning

	path, err := flags.GetString("config")
	if err != nil || path == "" {
		return t, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}

	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("config %s: %w", path, err)
	}

	return t, nil
}

func floatValue(flags *pflag.FlagSet, name string, file *float64) (float64, error) {
	if file != nil && !flags.Changed(name) {
		return *file, nil
	}

	return flags.GetFloat64(name)
}
