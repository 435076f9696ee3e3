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

// Package cli holds the root of the ames command tree and the helpers shared
// by its subcommands. Subcommand packages attach themselves to RootCmd in
// their init.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd is the root of the ames command tree.
var RootCmd = &cobra.Command{
	Use:   "ames",
	Short: "Build classified energy-infrastructure network models",
	Long: "Reads raw geospatial facility records, repairs their topology into a\n" +
		"single connected network, classifies facilities against the reference\n" +
		"taxonomy, and emits an LFES XML document.",
}
