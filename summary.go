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

// DropReason says why the record filter discarded a feature.
type DropReason int32

const (
	// StatusInvalid covers duplicated, canceled, retired, and improper
	// statuses.
	StatusInvalid DropReason = iota

	// ShortGeometry covers features with no vertices.
	ShortGeometry

	// ZeroLength covers lines whose vertices all snap to one coordinate.
	ZeroLength

	// MissingFacility covers features with no facility-type code.
	MissingFacility

	// DuplicateLine covers lines repeating an earlier line's endpoint pair
	// within the same energy sector, in either direction.
	DuplicateLine

	// DuplicateSite covers sites at a coordinate already occupied by an
	// earlier site of the same energy sector.
	DuplicateSite

	// EnergyExcluded covers features outside the selected energy sectors.
	EnergyExcluded

	// RegionExcluded covers features tagged with a different region.
	RegionExcluded
)

var dropReasonNames = map[DropReason]string{
	StatusInvalid:   "invalid status",
	ShortGeometry:   "short geometry",
	ZeroLength:      "zero length",
	MissingFacility: "missing facility",
	DuplicateLine:   "duplicate line",
	DuplicateSite:   "duplicate site",
	EnergyExcluded:  "energy excluded",
	RegionExcluded:  "region excluded",
}

func (r DropReason) String() string {
	if name, ok := dropReasonNames[r]; ok {
		return name
	}

	return fmt.Sprintf("DropReason(%d)", int32(r))
}

// Summary accumulates what each stage did to the data. Build returns it
// alongside the graph so callers can report per-record drops and repairs
// that were deliberately non-fatal.
type Summary struct {
	Loaded  int
	Kept    int
	Dropped map[DropReason]int

	Clusters       int
	CollapsedLoops int

	BufferNodes  int
	Connectors   int
	JoinedChains int
	Unresolved   []model.NodeID

	UnclassifiedNodes []model.NodeID
	UnclassifiedEdges []model.EdgeID
}

func (s *Summary) drop(r DropReason) {
	if s.Dropped == nil {
		s.Dropped = make(map[DropReason]int)
	}

	s.Dropped[r]++
}

// DroppedTotal is the number of features the filter discarded.
func (s *Summary) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}

	return total
}
