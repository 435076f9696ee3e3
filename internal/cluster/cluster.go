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

// Package cluster groups facility endpoints and site positions that fall
// within a tolerance radius of each other, producing one cluster per future
// graph node. Assignment is deterministic: the same set of points yields the
// same clusters with the same identifiers regardless of input order.
package cluster

import (
	"sort"

	"github.com/liines/ames/model"
)

// Point is a candidate position entering clustering. Index identifies the
// vertex within its feature's geometry; site points carry Index zero.
type Point struct {
	Feature int64
	Index   int
	IsSite  bool
	Pos     model.XY
}

// Cluster is a group of points that collapse into a single node. Members are
// indices into the point slice handed to Assign, in ascending order.
type Cluster struct {
	ID       int
	Members  []int
	Centroid model.XY
	Sites    int
}

// Assign partitions points into clusters under the tolerance radius. Two
// points land in the same cluster when a chain of points connects them with
// every hop at distance <= tol. Unions are applied in a canonical order
// derived from position so the resulting partition and identifiers do not
// depend on the order of the input slice.
func Assign(points []Point, tol model.Degrees) []Cluster {
	n := len(points)
	if n == 0 {
		return nil
	}

	positions := make([]model.XY, n)
	for i, p := range points {
		positions[i] = p.Pos
	}

	canon := make([]int, n)
	for i := range canon {
		canon[i] = i
	}

	sort.Slice(canon, func(a, b int) bool {
		pa, pb := positions[canon[a]], positions[canon[b]]
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		return canon[a] < canon[b]
	})

	ix := NewIndex(tol, positions)
	uf := newUnionFind(n)

	r := float64(tol)
	for _, i := range canon {
		ix.Within(positions[i], r, func(j int, _ float64) {
			if j != i {
				uf.union(i, j)
			}
		})
	}

	// Rank of each point in canonical order; a cluster's identity is the best
	// canonical rank among its members.
	rank := make([]int, n)
	for r, i := range canon {
		rank[i] = r
	}

	members := make(map[int][]int, n)
	lead := make(map[int]int, n)

	for i := 0; i < n; i++ {
		root := uf.find(i)
		members[root] = append(members[root], i)

		if best, ok := lead[root]; !ok || rank[i] < best {
			lead[root] = rank[i]
		}
	}

	roots := make([]int, 0, len(members))
	for root := range members {
		roots = append(roots, root)
	}

	sort.Slice(roots, func(a, b int) bool {
		return lead[roots[a]] < lead[roots[b]]
	})

	clusters := make([]Cluster, len(roots))

	for id, root := range roots {
		ms := members[root]
		sort.Ints(ms)

		var cx, cy float64
		sites := 0

		for _, i := range ms {
			cx += float64(positions[i].X)
			cy += float64(positions[i].Y)

			if points[i].IsSite {
				sites++
			}
		}

		clusters[id] = Cluster{
			ID:      id,
			Members: ms,
			Centroid: model.XY{
				X: model.Degrees(cx / float64(len(ms))),
				Y: model.Degrees(cy / float64(len(ms))),
			}.Snap(),
			Sites: sites,
		}
	}

	return clusters
}
