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

package model

import (
	"fmt"
)

// NodeID is the primary key of a Node. IDs are dense; a NodeID indexes the
// graph's node slice directly.
type NodeID int64

// EdgeID is the primary key of an Edge.
type EdgeID int64

// Origin distinguishes originally-digitized entities from entities the
// topology repairer synthesized.
type Origin int32

const (
	// Digitized denotes an entity backed by an input record.
	Digitized Origin = iota

	// Synthetic denotes an entity created during topology repair.
	Synthetic
)

func (o Origin) String() string {
	switch o {
	case Digitized:
		return "digitized"
	case Synthetic:
		return "synthetic"
	default:
		return fmt.Sprintf("Origin(%d)", int32(o))
	}
}

// Category is a physical-resource category from the reference taxonomy. The
// zero value marks a record that failed classification.
type Category string

// Unclassified is the category of a record with no matching taxonomy entry.
const Unclassified Category = ""

// FacilityRef records one contributing facility attribute set on a Node. A
// node formed from several overlapping records keeps all of them; the
// classifier resolves conflicts by priority, never by clustering order.
type FacilityRef struct {
	Feature    int64 // owning RawFeature ID
	Energy     EnergyType
	Facility   string
	Attributes map[string]string
}

// Node is a graph vertex derived one-to-one from an endpoint cluster.
type Node struct {
	ID       NodeID
	Position XY
	Energies []EnergyType // sorted, unique
	Refs     []FacilityRef
	Origin   Origin
	Category Category

	// Unresolved marks an isolated node with no neighbor within the maximum
	// repair radius.
	Unresolved bool

	// Unclassified marks a node with no matching taxonomy entry.
	Unclassified bool
}

// Energy returns the node's primary energy type.
func (n Node) Energy() EnergyType {
	if len(n.Energies) == 0 {
		return Electric
	}

	return n.Energies[0]
}

// Edge is derived from a polyline feature and references exactly two nodes.
type Edge struct {
	ID       EdgeID
	From     NodeID
	To       NodeID
	Energy   EnergyType
	Facility string
	Origin   Origin
	Category Category

	// Unclassified marks an edge with no matching taxonomy entry.
	Unclassified bool
}

// Graph is the assembled, read-only network. Node and edge IDs index the
// slices directly.
type Graph struct {
	Nodes  []Node
	Edges  []Edge
	Extent *BoundingBox

	degree []int
}

// NewGraph assembles nodes and edges into a Graph and precomputes node
// degrees. It does not validate invariants; the assembler does that before
// construction.
func NewGraph(nodes []Node, edges []Edge, extent *BoundingBox) *Graph {
	g := &Graph{
		Nodes:  nodes,
		Edges:  edges,
		Extent: extent,
		degree: make([]int, len(nodes)),
	}

	for _, e := range edges {
		g.degree[e.From]++
		g.degree[e.To]++
	}

	return g
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(g.Nodes) {
		return Node{}, false
	}

	return g.Nodes[id], true
}

// Degree returns the count of edges incident to the node. A self-loop
// contributes two.
func (g *Graph) Degree(id NodeID) int {
	if id < 0 || int(id) >= len(g.degree) {
		return 0
	}

	return g.degree[id]
}

// IsolatedNodes returns the IDs of all nodes with degree zero, ascending.
func (g *Graph) IsolatedNodes() []NodeID {
	var iso []NodeID

	for i, d := range g.degree {
		if d == 0 {
			iso = append(iso, NodeID(i))
		}
	}

	return iso
}
