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

// Package build implements the ames build command: it runs the full pipeline
// over a GeoJSON feature file and writes the resulting LFES XML document.
package build

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/liines/ames"
	"github.com/liines/ames/cmd/ames/cli"
	"github.com/liines/ames/internal/export"
	"github.com/liines/ames/internal/loader"
	"github.com/liines/ames/model"
)

func init() {
	cli.RootCmd.AddCommand(buildCmd)

	flags := buildCmd.Flags()
	flags.StringSliceP("energy", "e", []string{"elec", "NG", "oil", "coal"}, "energy sectors to include (elec, NG, oil, coal)")
	flags.StringP("region", "r", "USA", "region the input was exported for")
	flags.StringP("out", "o", "", "output file (default stdout)")
	flags.String("compress", "none", "output compression (none, zstd, lz4, xz)")
	flags.String("name", "AMES", "document name attribute")
	flags.Float64("tolerance", float64(ames.DefaultTolerance), "endpoint clustering radius in degrees")
	flags.Float64("snap-radius", float64(ames.DefaultSnapRadius), "initial isolated-node search radius in degrees")
	flags.Float64("max-radius", float64(ames.DefaultMaxRepairRadius), "maximum isolated-node search radius in degrees")
	flags.Uint16P("cpu", "c", ames.DefaultNCpu(), "number of CPUs to use for stage processing")
	flags.Bool("no-join", false, "keep chain segments split at synthetic junctions")
	flags.String("config", "", "YAML file with pipeline tuning overrides")
}

var buildCmd = &cobra.Command{
	Use:   "build [<GeoJSON file>]",
	Short: "Build a classified network model from raw facility features",
	Long:  "Build a classified network model from raw facility features",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		// reject bad selections before touching the input
		tokens, err := flags.GetStringSlice("energy")
		if err != nil {
			log.Fatal(err)
		}

		energies := make([]model.EnergyType, len(tokens))
		for i, tok := range tokens {
			if energies[i], err = model.ParseEnergyType(tok); err != nil {
				log.Fatal(err)
			}
		}

		regionTok, err := flags.GetString("region")
		if err != nil {
			log.Fatal(err)
		}

		region, err := model.ParseRegion(regionTok)
		if err != nil {
			log.Fatal(err)
		}

		compressTok, err := flags.GetString("compress")
		if err != nil {
			log.Fatal(err)
		}

		compression, err := export.ParseCompression(compressTok)
		if err != nil {
			log.Fatal(err)
		}

		var f *os.File
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

		features, err := loader.Read(in, region)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		opts := []ames.Option{
			ames.WithEnergyTypes(energies...),
			ames.WithRegion(region),
		}

		opts, err = appendTuning(opts, flags)
		if err != nil {
			log.Fatal(err)
		}

		graph, sum, err := ames.Build(cmd.Context(), features, opts...)
		if err != nil {
			log.Fatal(err)
		}

		renderSummary(sum, graph)

		name, err := flags.GetString("name")
		if err != nil {
			log.Fatal(err)
		}

		w, err := outputWriter(flags)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.Write(w, graph, export.Meta{Name: name, Region: region}, compression); err != nil {
			log.Fatal(err)
		}

		if c, ok := w.(io.Closer); ok && w != os.Stdout {
			if err := c.Close(); err != nil {
				log.Fatal(err)
			}
		}
	},
}

func appendTuning(opts []ames.Option, flags *pflag.FlagSet) ([]ames.Option, error) {
	file, err := loadTuning(flags)
	if err != nil {
		return nil, err
	}

	tolerance, err := floatValue(flags, "tolerance", file.Tolerance)
	if err != nil {
		return nil, err
	}

	snap, err := floatValue(flags, "snap-radius", file.SnapRadius)
	if err != nil {
		return nil, err
	}

	maxRadius, err := floatValue(flags, "max-radius", file.MaxRadius)
	if err != nil {
		return nil, err
	}

	ncpu, err := flags.GetUint16("cpu")
	if err != nil {
		return nil, err
	}

	if file.CPU != nil && !flags.Changed("cpu") {
		ncpu = *file.CPU
	}

	noJoin, err := flags.GetBool("no-join")
	if err != nil {
		return nil, err
	}

	join := !noJoin
	if file.JoinChains != nil && !flags.Changed("no-join") {
		join = *file.JoinChains
	}

	opts = append(opts,
		ames.WithTolerance(model.Degrees(tolerance)),
		ames.WithSnapRadius(model.Degrees(snap)),
		ames.WithMaxRepairRadius(model.Degrees(maxRadius)),
		ames.WithNCpus(ncpu))

	if !join {
		opts = append(opts, ames.WithoutChainJoining())
	}

	return opts, nil
}

func outputWriter(flags *pflag.FlagSet) (io.Writer, error) {
	path, err := flags.GetString("out")
	if err != nil {
		return nil, err
	}

	if path == "" {
		return os.Stdout, nil
	}

	return os.Create(path)
}

func renderSummary(sum *ames.Summary, graph *model.Graph) {
	fmt.Fprintf(os.Stderr, "Loaded: %s\n", humanize.Comma(int64(sum.Loaded)))
	fmt.Fprintf(os.Stderr, "Kept: %s\n", humanize.Comma(int64(sum.Kept)))

	reasons := make([]ames.DropReason, 0, len(sum.Dropped))
	for reason := range sum.Dropped {
		reasons = append(reasons, reason)
	}

	sort.Slice(reasons, func(a, b int) bool { return reasons[a] < reasons[b] })

	for _, reason := range reasons {
		fmt.Fprintf(os.Stderr, "Dropped (%s): %s\n", reason, humanize.Comma(int64(sum.Dropped[reason])))
	}

	fmt.Fprintf(os.Stderr, "Clusters: %s\n", humanize.Comma(int64(sum.Clusters)))
	fmt.Fprintf(os.Stderr, "CollapsedLoops: %s\n", humanize.Comma(int64(sum.CollapsedLoops)))
	fmt.Fprintf(os.Stderr, "BufferNodes: %s\n", humanize.Comma(int64(sum.BufferNodes)))
	fmt.Fprintf(os.Stderr, "Connectors: %s\n", humanize.Comma(int64(sum.Connectors)))
	fmt.Fprintf(os.Stderr, "JoinedChains: %s\n", humanize.Comma(int64(sum.JoinedChains)))
	fmt.Fprintf(os.Stderr, "Unresolved: %s\n", humanize.Comma(int64(len(sum.Unresolved))))
	fmt.Fprintf(os.Stderr, "Isolated: %s\n", humanize.Comma(int64(len(graph.IsolatedNodes()))))
	fmt.Fprintf(os.Stderr, "Unclassified: %s\n",
		humanize.Comma(int64(len(sum.UnclassifiedNodes)+len(sum.UnclassifiedEdges))))
	fmt.Fprintf(os.Stderr, "Nodes: %s\n", humanize.Comma(int64(len(graph.Nodes))))
	fmt.Fprintf(os.Stderr, "Edges: %s\n", humanize.Comma(int64(len(graph.Edges))))
	fmt.Fprintf(os.Stderr, "Extent: %s\n", graph.Extent)
}
