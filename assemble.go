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
	"fmt"

	"github.com/liines/ames/model"
)

// assemble freezes the classified nodes and edges into the final graph. Every
// edge endpoint must resolve to a node and no synthesized edge may close a
// self-loop; a violation aborts the run.
func assemble(nodes []model.Node, edges []model.Edge) (*model.Graph, error) {
	extent := model.InitialBoundingBox()

	for _, n := range nodes {
		extent.ExpandWithXY(n.Position)
	}

	for _, e := range edges {
		if !resolves(e.From, len(nodes)) || !resolves(e.To, len(nodes)) {
			return nil, fmt.Errorf("edge %d: %w", e.ID, ErrUnresolvedEdge)
		}

		if e.From == e.To && e.Origin == model.Synthetic {
			return nil, fmt.Errorf("edge %d: %w", e.ID, ErrSyntheticLoop)
		}
	}

	return model.NewGraph(nodes, edges, extent), nil
}

func resolves(id model.NodeID, n int) bool {
	return id >= 0 && int(id) < n
}
