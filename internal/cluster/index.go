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

package cluster

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/liines/ames/model"
)

type cellKey struct {
	cx, cy int32
}

// Index is a uniform-grid spatial index over positions. With cell size equal
// to the query radius, all candidates within the radius of a position lie in
// the 3x3 cell block around it.
type Index struct {
	cell  float64
	cells map[cellKey][]int
	pos   []model.XY
}

// NewIndex builds an index over positions with the given cell size.
func NewIndex(cell model.Degrees, positions []model.XY) *Index {
	ix := &Index{
		cell:  float64(cell),
		cells: make(map[cellKey][]int, len(positions)),
		pos:   positions,
	}

	for i, p := range positions {
		k := ix.key(p)
		ix.cells[k] = append(ix.cells[k], i)
	}

	return ix
}

func (ix *Index) key(p model.XY) cellKey {
	return cellKey{
		cx: floorDiv(float64(p.X), ix.cell),
		cy: floorDiv(float64(p.Y), ix.cell),
	}
}

func floorDiv[T constraints.Float](v, cell T) int32 {
	return int32(math.Floor(float64(v / cell)))
}

// Within calls yield for every indexed position at distance <= r from pos,
// in ascending index order within each visited cell.
func (ix *Index) Within(pos model.XY, r float64, yield func(i int, dist float64)) {
	ring := int32(math.Ceil(r / ix.cell))
	center := ix.key(pos)

	for cx := center.cx - ring; cx <= center.cx+ring; cx++ {
		for cy := center.cy - ring; cy <= center.cy+ring; cy++ {
			for _, i := range ix.cells[cellKey{cx: cx, cy: cy}] {
				if d := pos.DistanceTo(ix.pos[i]); d <= r {
					yield(i, d)
				}
			}
		}
	}
}

// Nearest returns the indexed position nearest to pos within max, expanding
// the search radius by doubling from start. Candidates at the excluded index
// are skipped. Ties are broken toward the lower index so repeated runs pick
// the same neighbor.
func (ix *Index) Nearest(pos model.XY, start, max float64, exclude func(int) bool) (int, float64, bool) {
	best := -1
	bestDist := math.Inf(1)

	scan := func(r float64) {
		ix.Within(pos, r, func(i int, d float64) {
			if exclude != nil && exclude(i) {
				return
			}

			if d < bestDist || (d == bestDist && i < best) {
				best, bestDist = i, d
			}
		})
	}

	for r := start; r < max; r *= 2 {
		scan(r)

		if best >= 0 {
			return best, bestDist, true
		}
	}

	scan(max)

	if best >= 0 {
		return best, bestDist, true
	}

	return 0, 0, false
}
