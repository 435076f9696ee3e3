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

// Package info implements the ames info command: per-sector and per-status
// feature counts without building the network.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/liines/ames/cmd/ames/cli"
	"github.com/liines/ames/internal/loader"
	"github.com/liines/ames/model"
)

var out io.Writer = os.Stdout

type report struct {
	Features int
	Sites    int
	Lines    int

	ByEnergy map[string]int
	ByStatus map[string]int
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.StringP("region", "r", "USA", "region the input was exported for")
}

var infoCmd = &cobra.Command{
	Use:   "info [<GeoJSON file>]",
	Short: "Print information about a raw facility feature file",
	Long:  "Print information about a raw facility feature file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File

		var err error

		if len(args) == 1 {
			if f, err = os.Open(args[0]); err != nil {
				log.Fatal(err)
			}
		} else {
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}

		flags := cmd.Flags()

		regionTok, err := flags.GetString("region")
		if err != nil {
			log.Fatal(err)
		}

		region, err := model.ParseRegion(regionTok)
		if err != nil {
			log.Fatal(err)
		}

		rep := runInfo(in, region)

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(rep)
		} else {
			renderTxt(rep)
		}
	},
}

func runInfo(in io.Reader, region model.Region) *report {
	features, err := loader.Read(in, region)
	if err != nil {
		log.Fatal(err)
	}

	rep := &report{
		Features: len(features),
		ByEnergy: make(map[string]int),
		ByStatus: make(map[string]int),
	}

	for _, f := range features {
		if f.IsLine() {
			rep.Lines++
		} else {
			rep.Sites++
		}

		rep.ByEnergy[f.Energy.String()]++
		rep.ByStatus[f.Status.String()]++
	}

	return rep
}

func renderJSON(rep *report) {
	b, err := json.Marshal(rep)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintln(out, string(b))
}

func renderTxt(rep *report) {
	fmt.Fprintf(out, "Features: %s\n", humanize.Comma(int64(rep.Features)))
	fmt.Fprintf(out, "Sites: %s\n", humanize.Comma(int64(rep.Sites)))
	fmt.Fprintf(out, "Lines: %s\n", humanize.Comma(int64(rep.Lines)))

	for _, e := range []model.EnergyType{model.Electric, model.NaturalGas, model.Oil, model.Coal} {
		if n, ok := rep.ByEnergy[e.String()]; ok {
			fmt.Fprintf(out, "Energy %s: %s\n", e, humanize.Comma(int64(n)))
		}
	}

	for _, s := range []model.Status{model.InService, model.Duplicated, model.Canceled, model.Retired, model.Improper} {
		if n, ok := rep.ByStatus[s.String()]; ok {
			fmt.Fprintf(out, "Status %s: %s\n", s, humanize.Comma(int64(n)))
		}
	}
}
