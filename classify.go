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

package ames

import (
	"github.com/destel/rill"

	"github.com/liines/ames/internal/taxonomy"
	"github.com/liines/ames/internal/topology"
	"github.com/liines/ames/model"
)

type classified struct {
	nodes []model.Node
	edges []model.Edge
}

// classifyElements assigns a physical-resource category to every node and
// edge. Classification is pure per element and runs in parallel; unknown
// combinations flag the element unclassified but never drop it.
func classifyElements(nodes []model.Node, edges []model.Edge, tx *taxonomy.Taxonomy, nCPU int, sum *Summary) (classified, error) {
	nodesOut := rill.OrderedMap(rill.FromSlice(nodes, nil), nCPU, func(n model.Node) (model.Node, error) {
		return classifyNode(n, tx), nil
	})

	ns, err := rill.ToSlice(nodesOut)
	if err != nil {
		return classified{}, err
	}

	edgesOut := rill.OrderedMap(rill.FromSlice(edges, nil), nCPU, func(e model.Edge) (model.Edge, error) {
		return classifyEdge(e, tx), nil
	})

	es, err := rill.ToSlice(edgesOut)
	if err != nil {
		return classified{}, err
	}

	for _, n := range ns {
		if n.Unclassified {
			sum.UnclassifiedNodes = append(sum.UnclassifiedNodes, n.ID)
		}
	}

	for _, e := range es {
		if e.Unclassified {
			sum.UnclassifiedEdges = append(sum.UnclassifiedEdges, e.ID)
		}
	}

	return classified{nodes: ns, edges: es}, nil
}

// classifyNode resolves conflicting facility contributions by the energy
// type's priority order, never by clustering order. Synthetic junctions with
// no facility refs get the buffer category of their energy type.
func classifyNode(n model.Node, tx *taxonomy.Taxonomy) model.Node {
	if len(n.Refs) == 0 {
		n.Category = tx.BufferCategory(n.Energy())

		return n
	}

	categories := make([]model.Category, 0, len(n.Refs))

	for _, ref := range n.Refs {
		if c, ok := tx.NodeCategory(ref.Energy, ref.Facility, ref.Attributes["prime_mvr"]); ok {
			categories = append(categories, c)
		}
	}

	n.Category = tx.Primary(n.Energy(), categories)
	n.Unclassified = n.Category == model.Unclassified

	return n
}

func classifyEdge(e model.Edge, tx *taxonomy.Taxonomy) model.Edge {
	if e.Facility == topology.ConnectorFacility {
		e.Category = tx.ConnectorCategory(e.Energy)

		return e
	}

	c, ok := tx.EdgeCategory(e.Energy, e.Facility)
	e.Category = c
	e.Unclassified = !ok

	return e
}
