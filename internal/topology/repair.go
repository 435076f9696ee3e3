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

// Package topology repairs the connectivity defects left behind by digitized
// facility data: degree-two junction nodes that merely split a single run of
// the same facility, and sites that ended up with no incident edges at all.
// Repair is idempotent; running it over its own output changes nothing.
package topology

import (
	"sort"

	"github.com/liines/ames/internal/cluster"
	"github.com/liines/ames/model"
)

// ConnectorFacility is the facility code stamped on synthesized edges that
// tie an isolated node to its nearest compatible neighbor.
const ConnectorFacility = "connector"

// Config carries the repair radii. SnapRadius seeds the neighbor search for
// isolated nodes; the search doubles its radius until it reaches MaxRadius,
// beyond which a node is left unresolved.
type Config struct {
	SnapRadius model.Degrees
	MaxRadius  model.Degrees
	JoinChains bool
}

// Result is the repaired topology plus what the repair did to get there. The
// node and edge slices are freshly allocated with dense identifiers; the
// inputs are left untouched.
type Result struct {
	Nodes []model.Node
	Edges []model.Edge

	BufferNodes  int
	Connectors   int
	JoinedChains int
	Unresolved   []model.NodeID
}

// Repair joins facility chains through synthetic junction nodes, synthesizes
// connector edges for isolated nodes, and flags the nodes it cannot resolve.
// Nodes are visited in ascending identifier order so repeated runs over the
// same input produce the same output.
func Repair(nodes []model.Node, edges []model.Edge, cfg Config) Result {
	ns := make([]model.Node, len(nodes))
	copy(ns, nodes)

	es := make([]model.Edge, len(edges))
	copy(es, edges)

	var res Result

	for i := range ns {
		if ns[i].Origin == model.Synthetic {
			res.BufferNodes++
		}
	}

	if cfg.JoinChains {
		ns, es, res.JoinedChains = joinChains(ns, es)
	}

	es, res.Connectors, res.Unresolved = connectIsolated(ns, es, cfg)

	res.Nodes = ns
	res.Edges = es

	return res
}

// joinChains removes synthetic degree-two nodes whose two incident edges
// carry the same energy and facility, splicing the edges into one. A splice
// that would close a loop onto a single node is skipped, as are synthesized
// connector edges: two connectors meeting at a junction are distinct repairs,
// not a split facility run.
func joinChains(nodes []model.Node, edges []model.Edge) ([]model.Node, []model.Edge, int) {
	incident := make(map[model.NodeID][]int, len(nodes))
	for i, e := range edges {
		incident[e.From] = append(incident[e.From], i)
		incident[e.To] = append(incident[e.To], i)
	}

	removedNode := make(map[model.NodeID]bool)
	removedEdge := make(map[int]bool)
	joined := 0

	for _, n := range nodes {
		if n.Origin != model.Synthetic || len(n.Refs) > 0 {
			continue
		}

		inc := live(incident[n.ID], removedEdge)
		if len(inc) != 2 {
			continue
		}

		a, b := &edges[inc[0]], &edges[inc[1]]
		if a.Origin == model.Synthetic || b.Origin == model.Synthetic {
			continue
		}

		if a.Energy != b.Energy || a.Facility != b.Facility {
			continue
		}

		u := other(a, n.ID)
		v := other(b, n.ID)

		if u == v || u == n.ID || v == n.ID {
			continue
		}

		a.From, a.To = u, v
		incident[v] = append(incident[v], inc[0])

		removedEdge[inc[1]] = true
		removedNode[n.ID] = true
		joined++
	}

	if joined == 0 {
		return nodes, edges, 0
	}

	ns, es := compact(nodes, edges, removedNode, removedEdge)

	return ns, es, joined
}

// connectIsolated gives every zero-degree node a synthesized connector edge
// to its nearest neighbor sharing an energy type, searching outward from the
// snap radius up to the max radius. Nodes with no such neighbor are marked
// unresolved.
func connectIsolated(nodes []model.Node, edges []model.Edge, cfg Config) ([]model.Edge, int, []model.NodeID) {
	degree := make([]int, len(nodes))
	for _, e := range edges {
		degree[e.From]++
		degree[e.To]++
	}

	positions := make([]model.XY, len(nodes))
	for i, n := range nodes {
		positions[i] = n.Position
	}

	ix := cluster.NewIndex(cfg.SnapRadius, positions)

	connectors := 0

	var unresolved []model.NodeID

	for i := range nodes {
		if degree[i] > 0 {
			continue
		}

		n := &nodes[i]
		energy := n.Energy()

		j, _, ok := ix.Nearest(n.Position, float64(cfg.SnapRadius), float64(cfg.MaxRadius), func(j int) bool {
			return j == i || !hasEnergy(&nodes[j], energy)
		})
		if !ok {
			n.Unresolved = true
			unresolved = append(unresolved, n.ID)

			continue
		}

		edges = append(edges, model.Edge{
			ID:       model.EdgeID(len(edges)),
			From:     n.ID,
			To:       nodes[j].ID,
			Energy:   energy,
			Facility: ConnectorFacility,
			Origin:   model.Synthetic,
		})
		degree[i]++
		degree[j]++
		connectors++
	}

	return edges, connectors, unresolved
}

func hasEnergy(n *model.Node, e model.EnergyType) bool {
	for _, ne := range n.Energies {
		if ne == e {
			return true
		}
	}

	return false
}

func other(e *model.Edge, n model.NodeID) model.NodeID {
	if e.From == n {
		return e.To
	}

	return e.From
}

func live(idx []int, removed map[int]bool) []int {
	out := idx[:0:0]
	for _, i := range idx {
		if !removed[i] {
			out = append(out, i)
		}
	}

	return out
}

// compact renumbers the surviving nodes and edges into dense identifier
// ranges, remapping edge endpoints along the way. Relative order is
// preserved so identifiers stay stable across runs.
func compact(nodes []model.Node, edges []model.Edge, dropNode map[model.NodeID]bool, dropEdge map[int]bool) ([]model.Node, []model.Edge) {
	remap := make(map[model.NodeID]model.NodeID, len(nodes))
	ns := make([]model.Node, 0, len(nodes)-len(dropNode))

	for _, n := range nodes {
		if dropNode[n.ID] {
			continue
		}

		remap[n.ID] = model.NodeID(len(ns))
		n.ID = model.NodeID(len(ns))
		ns = append(ns, n)
	}

	keep := make([]int, 0, len(edges)-len(dropEdge))

	for i := range edges {
		if !dropEdge[i] {
			keep = append(keep, i)
		}
	}

	sort.Ints(keep)

	es := make([]model.Edge, 0, len(keep))

	for _, i := range keep {
		e := edges[i]
		e.ID = model.EdgeID(len(es))
		e.From = remap[e.From]
		e.To = remap[e.To]
		es = append(es, e)
	}

	return ns, es
}
