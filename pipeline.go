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

// Package ames turns raw geospatial energy-infrastructure records into a
// single classified network graph. Build runs the stages in order: record
// filtering, endpoint clustering, topology repair, facility classification,
// and graph assembly. Every stage produces a new representation; nothing
// mutates a prior stage's output.
package ames

import (
	"context"
	"errors"
	"log/slog"

	"github.com/liines/ames/internal/cluster"
	"github.com/liines/ames/internal/taxonomy"
	"github.com/liines/ames/internal/topology"
	"github.com/liines/ames/model"
)

var (
	// ErrInvalidConfig reports a rejected pipeline configuration.
	ErrInvalidConfig = errors.New("invalid pipeline configuration")

	// ErrUnresolvedEdge reports an edge endpoint that does not resolve to a
	// node of the assembled graph.
	ErrUnresolvedEdge = errors.New("edge endpoint does not resolve to a node")

	// ErrSyntheticLoop reports a synthesized edge that closes onto a single
	// node. Self-loops are admitted only when present in raw data.
	ErrSyntheticLoop = errors.New("synthesized edge closes a self-loop")
)

// Build runs the full pipeline over raw features and returns the assembled
// graph together with a summary of the per-record drops and repairs. The
// context is checked between stages; per-record problems are counted, never
// fatal, while configuration and invariant violations abort the run.
func Build(ctx context.Context, features []model.RawFeature, opts ...Option) (*model.Graph, *Summary, error) {
	cfg := defaultPipelineConfig()

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	tx, err := taxonomy.Load()
	if err != nil {
		return nil, nil, err
	}

	sum := &Summary{Loaded: len(features)}

	kept, err := filterFeatures(features, &cfg, sum)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("filtered features", "loaded", sum.Loaded, "kept", sum.Kept)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	points, offsets := collectPoints(kept)
	clusters := cluster.Assign(points, cfg.Tolerance)
	sum.Clusters = len(clusters)

	slog.Debug("clustered endpoints", "points", len(points), "clusters", len(clusters))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	nodes, edges := buildElements(kept, offsets, clusters, len(points), sum)

	res := topology.Repair(nodes, edges, topology.Config{
		SnapRadius: cfg.SnapRadius,
		MaxRadius:  cfg.MaxRepairRadius,
		JoinChains: cfg.JoinChains,
	})

	sum.BufferNodes = res.BufferNodes
	sum.Connectors = res.Connectors
	sum.JoinedChains = res.JoinedChains
	sum.Unresolved = res.Unresolved

	slog.Debug("repaired topology",
		"buffers", res.BufferNodes,
		"connectors", res.Connectors,
		"joined", res.JoinedChains,
		"unresolved", len(res.Unresolved))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	cls, err := classifyElements(res.Nodes, res.Edges, tx, int(cfg.NCPU), sum)
	if err != nil {
		return nil, nil, err
	}

	graph, err := assemble(cls.nodes, cls.edges)
	if err != nil {
		slog.Error("unable to assemble graph", "error", err)

		return nil, nil, err
	}

	return graph, sum, nil
}

// collectPoints flattens the kept features into the clustering arena: one
// site point per point feature, the two endpoints per line feature. offsets
// gives each feature's first arena index.
func collectPoints(kept []model.RawFeature) ([]cluster.Point, []int) {
	points := make([]cluster.Point, 0, len(kept))
	offsets := make([]int, len(kept))

	for i, f := range kept {
		offsets[i] = len(points)

		if f.IsLine() {
			points = append(points,
				cluster.Point{Feature: f.ID, Index: 0, Pos: f.Origin().Snap()},
				cluster.Point{Feature: f.ID, Index: len(f.Geometry) - 1, Pos: f.Dest().Snap()})
		} else {
			points = append(points,
				cluster.Point{Feature: f.ID, IsSite: true, Pos: f.Origin().Snap()})
		}
	}

	return points, offsets
}

// buildElements derives one node per cluster and one edge per line feature.
// A line whose distinct raw endpoints collapsed into one cluster is dropped
// as a collapsed loop; a line whose raw endpoints were already identical
// keeps its self-loop.
func buildElements(kept []model.RawFeature, offsets []int, clusters []cluster.Cluster, nPoints int, sum *Summary) ([]model.Node, []model.Edge) {
	pointCluster := make([]int, nPoints)

	for _, c := range clusters {
		for _, m := range c.Members {
			pointCluster[m] = c.ID
		}
	}

	nodes := make([]model.Node, len(clusters))
	energies := make([]map[model.EnergyType]bool, len(clusters))

	for i, c := range clusters {
		origin := model.Synthetic
		if c.Sites > 0 {
			origin = model.Digitized
		}

		nodes[i] = model.Node{
			ID:       model.NodeID(c.ID),
			Position: c.Centroid,
			Origin:   origin,
		}
		energies[i] = make(map[model.EnergyType]bool)
	}

	var edges []model.Edge

	for i, f := range kept {
		if !f.IsLine() {
			n := pointCluster[offsets[i]]
			energies[n][f.Energy] = true
			nodes[n].Refs = append(nodes[n].Refs, model.FacilityRef{
				Feature:    f.ID,
				Energy:     f.Energy,
				Facility:   f.Facility,
				Attributes: f.Attributes,
			})

			continue
		}

		from := pointCluster[offsets[i]]
		to := pointCluster[offsets[i]+1]
		energies[from][f.Energy] = true
		energies[to][f.Energy] = true

		if from == to && f.Origin().Snap() != f.Dest().Snap() {
			sum.CollapsedLoops++

			continue
		}

		edges = append(edges, model.Edge{
			ID:       model.EdgeID(len(edges)),
			From:     model.NodeID(from),
			To:       model.NodeID(to),
			Energy:   f.Energy,
			Facility: f.Facility,
			Origin:   model.Digitized,
		})
	}

	for i := range nodes {
		nodes[i].Energies = sortedEnergies(energies[i])
	}

	return nodes, edges
}

func sortedEnergies(set map[model.EnergyType]bool) []model.EnergyType {
	out := make([]model.EnergyType, 0, len(set))

	for e := model.Electric; e <= model.Coal; e++ {
		if set[e] {
			out = append(out, e)
		}
	}

	return out
}
