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

package ames_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liines/ames"
	"github.com/liines/ames/model"
)

var nextID int64

func site(x, y model.Degrees, facility string, attrs map[string]string) model.RawFeature {
	nextID++

	return model.RawFeature{
		ID:         nextID,
		Energy:     model.Electric,
		Facility:   facility,
		Status:     model.InService,
		Region:     model.USA,
		Geometry:   []model.XY{{X: x, Y: y}},
		Attributes: attrs,
	}
}

func line(x1, y1, x2, y2 model.Degrees) model.RawFeature {
	nextID++

	return model.RawFeature{
		ID:       nextID,
		Energy:   model.Electric,
		Facility: "transmission line",
		Status:   model.InService,
		Region:   model.USA,
		Line:     true,
		Geometry: []model.XY{{X: x1, Y: y1}, {X: x2, Y: y2}},
	}
}

// Four sites collapsing pairwise under a wide tolerance, two lines between
// the pairs: two nodes, two parallel edges, nothing to repair.
func TestBuildClustersEndpointsIntoNodes(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(0, 0.5, "substation", nil),
		site(10, 10, "substation", nil),
		site(10, 10.4, "substation", nil),
		line(0, 0, 10, 10),
		line(0, 0.5, 10, 10.4),
	}

	graph, sum, err := ames.Build(context.Background(), features, ames.WithTolerance(1))
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 2)

	assert.Equal(t, 2, sum.Clusters)
	assert.Empty(t, sum.Unresolved)
	assert.Equal(t, 0, sum.Connectors)

	for _, e := range graph.Edges {
		assert.NotEqual(t, e.From, e.To)
		assert.Equal(t, 1, abs(int(e.From)-int(e.To)))
	}

	for _, n := range graph.Nodes {
		assert.GreaterOrEqual(t, graph.Degree(n.ID), 1)
		assert.Len(t, n.Refs, 2) // both contributing sites retained
	}
}

// A lone site with nothing within the max repair radius stays isolated,
// flagged, and the run still succeeds.
func TestBuildFlagsLoneUnresolvedNode(t *testing.T) {
	features := []model.RawFeature{site(0, 0, "substation", nil)}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 1)
	assert.Empty(t, graph.Edges)
	assert.True(t, graph.Nodes[0].Unresolved)
	assert.Equal(t, []model.NodeID{0}, sum.Unresolved)
	assert.Equal(t, []model.NodeID{0}, graph.IsolatedNodes())
	assert.Equal(t, 0, sum.Connectors)
}

func TestBuildDropsInvalidStatuses(t *testing.T) {
	invalid := site(1, 1, "substation", nil)
	invalid.Status = model.Retired

	canceled := line(2, 2, 3, 3)
	canceled.Status = model.Canceled

	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		invalid,
		canceled,
	}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Loaded)
	assert.Equal(t, 1, sum.Kept)
	assert.Equal(t, 2, sum.Dropped[ames.StatusInvalid])
	require.Len(t, graph.Nodes, 1)
}

func TestBuildDropsDegenerateGeometry(t *testing.T) {
	zero := line(5, 5, 5, 5)

	noFacility := site(6, 6, "", nil)

	// a polyline record with a single vertex is improperly defined, not a site
	stub := line(7, 7, 8, 8)
	stub.Geometry = stub.Geometry[:1]

	features := []model.RawFeature{site(0, 0, "substation", nil), zero, noFacility, stub}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Dropped[ames.ZeroLength])
	assert.Equal(t, 1, sum.Dropped[ames.MissingFacility])
	assert.Equal(t, 1, sum.Dropped[ames.ShortGeometry])
	assert.Equal(t, 1, sum.Kept)
	require.Len(t, graph.Nodes, 1)
}

func TestBuildDropsDuplicateLines(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(10, 10, "substation", nil),
		line(0, 0, 10, 10),
		line(0, 0, 10, 10),   // same endpoints
		line(10, 10, 0, 0),   // reversed endpoints
		line(0, 0, 10, 10.4), // distinct, kept
	}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Dropped[ames.DuplicateLine])
	assert.Len(t, graph.Edges, 2)
}

func TestBuildDropsDuplicateSites(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(0, 0, "substation", nil),
	}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Dropped[ames.DuplicateSite])
	require.Len(t, graph.Nodes, 1)
	require.Len(t, graph.Nodes[0].Refs, 1)
}

// A line whose distinct endpoints cluster into one node is a collapsed loop
// and is removed; self-loops survive only when the raw endpoints coincide.
func TestBuildRemovesCollapsedLoops(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		line(0, 0, 0, 0.5),
		line(0, 0, 10, 10), // keeps the node connected
	}

	graph, sum, err := ames.Build(context.Background(), features, ames.WithTolerance(1))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.CollapsedLoops)

	for _, e := range graph.Edges {
		assert.NotEqual(t, e.From, e.To)
	}
}

func TestBuildSynthesizesConnectorForIsolatedSite(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(0.1, 0, "power plant", nil), // isolated, within max radius
		line(0, 0, 10, 10),
	}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Connectors)
	assert.Empty(t, sum.Unresolved)

	for _, n := range graph.Nodes {
		assert.GreaterOrEqual(t, graph.Degree(n.ID), 1)
	}

	conn := graph.Edges[len(graph.Edges)-1]
	assert.Equal(t, model.Synthetic, conn.Origin)
	assert.Equal(t, model.Category("transmission"), conn.Category)
}

func TestBuildClassifiesByPriority(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(0, 0.0005, "power plant", nil), // same cluster under default tolerance
		line(0, 0, 10, 10),
		site(10, 10, "storage", nil),
	}

	graph, _, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 2)

	// load outranks generation-controlled
	assert.Equal(t, model.Category("load"), graph.Nodes[0].Category)
	assert.Equal(t, model.Category("storage"), graph.Nodes[1].Category)
	assert.Equal(t, model.Category("transmission"), graph.Edges[0].Category)
}

func TestBuildFlagsUnclassified(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "launch pad", nil),
		line(0, 0, 10, 10),
	}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 2)
	assert.True(t, graph.Nodes[0].Unclassified)
	assert.Equal(t, model.Unclassified, graph.Nodes[0].Category)
	assert.Equal(t, []model.NodeID{0}, sum.UnclassifiedNodes)
}

func TestBuildJoinsChains(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(10, 10, "substation", nil),
		line(0, 0, 5, 5),
		line(5, 5, 10, 10),
	}

	graph, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.JoinedChains)
	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
}

func TestBuildChainJoiningCanBeDisabled(t *testing.T) {
	features := []model.RawFeature{
		site(0, 0, "substation", nil),
		site(10, 10, "substation", nil),
		line(0, 0, 5, 5),
		line(5, 5, 10, 10),
	}

	graph, sum, err := ames.Build(context.Background(), features, ames.WithoutChainJoining())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.JoinedChains)
	require.Len(t, graph.Nodes, 3)
	require.Len(t, graph.Edges, 2)

	// the junction fell out of line endpoints alone
	junction, ok := graph.Node(junctionID(graph))
	require.True(t, ok)
	assert.Equal(t, model.Synthetic, junction.Origin)
	assert.Equal(t, model.Category("bus"), junction.Category)
}

func junctionID(g *model.Graph) model.NodeID {
	for _, n := range g.Nodes {
		if len(n.Refs) == 0 {
			return n.ID
		}
	}

	return -1
}

func TestBuildEnergySelection(t *testing.T) {
	gas := site(1, 1, "compressor station", nil)
	gas.Energy = model.NaturalGas

	features := []model.RawFeature{site(0, 0, "substation", nil), gas}

	graph, sum, err := ames.Build(context.Background(), features,
		ames.WithEnergyTypes(model.Electric))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Dropped[ames.EnergyExcluded])
	require.Len(t, graph.Nodes, 1)
}

func TestBuildRegionSelection(t *testing.T) {
	texan := site(1, 1, "substation", nil)
	texan.Region = model.Texas

	features := []model.RawFeature{site(0, 0, "substation", nil), texan}

	_, sum, err := ames.Build(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Dropped[ames.RegionExcluded])
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	_, _, err := ames.Build(context.Background(), nil, ames.WithTolerance(-1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ames.ErrInvalidConfig))

	_, _, err = ames.Build(context.Background(), nil,
		ames.WithSnapRadius(1), ames.WithMaxRepairRadius(0.5))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ames.ErrInvalidConfig))
}

func TestBuildHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ames.Build(ctx, []model.RawFeature{site(0, 0, "substation", nil)})

	assert.ErrorIs(t, err, context.Canceled)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
