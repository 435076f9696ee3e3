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

	"github.com/liines/ames/model"
)

type verdict struct {
	feature model.RawFeature
	drop    bool
	reason  DropReason
}

type endpointKey struct {
	energy model.EnergyType
	a, b   model.XY
}

type siteKey struct {
	energy model.EnergyType
	pos    model.XY
}

// filterFeatures drops invalid and redundant records, counting every drop in
// the summary. Per-record verdicts run in parallel; duplicate detection is
// order-dependent (the earlier record wins) and runs sequentially after.
func filterFeatures(features []model.RawFeature, cfg *pipelineOptions, sum *Summary) ([]model.RawFeature, error) {
	in := rill.FromSlice(features, nil)

	judged := rill.OrderedMap(in, int(cfg.NCPU), func(f model.RawFeature) (verdict, error) {
		return judge(f, cfg), nil
	})

	verdicts, err := rill.ToSlice(judged)
	if err != nil {
		return nil, err
	}

	kept := make([]model.RawFeature, 0, len(verdicts))
	lines := make(map[endpointKey]bool)
	sites := make(map[siteKey]bool)

	for _, v := range verdicts {
		if v.drop {
			sum.drop(v.reason)

			continue
		}

		f := v.feature

		if f.IsLine() {
			k := lineKey(f)
			if lines[k] {
				sum.drop(DuplicateLine)

				continue
			}

			lines[k] = true
		} else {
			k := siteKey{energy: f.Energy, pos: f.Origin().Snap()}
			if sites[k] {
				sum.drop(DuplicateSite)

				continue
			}

			sites[k] = true
		}

		kept = append(kept, f)
	}

	sum.Kept = len(kept)

	return kept, nil
}

func judge(f model.RawFeature, cfg *pipelineOptions) verdict {
	v := verdict{feature: f, drop: true}

	switch {
	case !cfg.selected(f.Energy):
		v.reason = EnergyExcluded
	case f.Region != cfg.Region:
		v.reason = RegionExcluded
	case !f.Status.Valid():
		v.reason = StatusInvalid
	case len(f.Geometry) == 0, f.IsLine() && len(f.Geometry) < 2:
		v.reason = ShortGeometry
	case f.Facility == "":
		v.reason = MissingFacility
	case f.IsLine() && degenerate(f.Geometry):
		v.reason = ZeroLength
	default:
		v.drop = false
	}

	return v
}

// degenerate reports whether every vertex snaps to the first one.
func degenerate(geometry []model.XY) bool {
	first := geometry[0].Snap()

	for _, p := range geometry[1:] {
		if p.Snap() != first {
			return false
		}
	}

	return true
}

// lineKey canonicalizes a line's endpoint pair so a reversed duplicate maps
// to the same key.
func lineKey(f model.RawFeature) endpointKey {
	a, b := f.Origin().Snap(), f.Dest().Snap()

	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}

	return endpointKey{energy: f.Energy, a: a, b: b}
}
