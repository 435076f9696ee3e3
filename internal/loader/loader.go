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

// Package loader reads raw facility features from GeoJSON. Coordinates snap
// to four decimal places on the way in; properties the pipeline does not
// interpret ride along as opaque attributes.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liines/ames/model"
)

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type feature struct {
	ID         json.RawMessage `json:"id"`
	Geometry   geometry        `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type collection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// Read parses a GeoJSON FeatureCollection into raw features tagged with the
// given region. The energy, facility, and status properties are interpreted;
// everything else lands in Attributes. Point, LineString, and MultiLineString
// geometries are accepted; a MultiLineString yields one feature per part.
func Read(r io.Reader, region model.Region) ([]model.RawFeature, error) {
	var col collection
	if err := json.NewDecoder(r).Decode(&col); err != nil {
		return nil, fmt.Errorf("unable to parse feature collection: %w", err)
	}

	if col.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected GeoJSON type %q", col.Type)
	}

	features := make([]model.RawFeature, 0, len(col.Features))
	nextID := int64(0)

	for i, f := range col.Features {
		id := featureID(f.ID, &nextID)

		energy, err := model.ParseEnergyType(property(f.Properties, "energy"))
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		geoms, err := vertices(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		raw := model.RawFeature{
			ID:         id,
			Energy:     energy,
			Facility:   property(f.Properties, "facility"),
			Status:     model.ParseStatus(property(f.Properties, "status")),
			Region:     region,
			Line:       f.Geometry.Type != "Point",
			Attributes: attributes(f.Properties),
		}

		for part, g := range geoms {
			rf := raw
			rf.Geometry = g

			if part > 0 {
				rf.ID = nextID
				nextID++
			}

			features = append(features, rf)
		}
	}

	return features, nil
}

// featureID uses the feature's own numeric id when it has one, otherwise the
// next sequential id. Sequential assignment never collides with ids already
// seen.
func featureID(raw json.RawMessage, next *int64) int64 {
	var id int64
	if len(raw) > 0 && json.Unmarshal(raw, &id) == nil {
		if id >= *next {
			*next = id + 1
		}

		return id
	}

	id = *next
	*next++

	return id
}

// vertices flattens a geometry into one or more snapped vertex runs.
func vertices(g geometry) ([][]model.XY, error) {
	switch g.Type {
	case "Point":
		var c [2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, fmt.Errorf("unable to parse point: %w", err)
		}

		return [][]model.XY{{snap(c)}}, nil

	case "LineString":
		var cs [][2]float64
		if err := json.Unmarshal(g.Coordinates, &cs); err != nil {
			return nil, fmt.Errorf("unable to parse line: %w", err)
		}

		return [][]model.XY{snapAll(cs)}, nil

	case "MultiLineString":
		var parts [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return nil, fmt.Errorf("unable to parse multi-line: %w", err)
		}

		out := make([][]model.XY, len(parts))
		for i, cs := range parts {
			out[i] = snapAll(cs)
		}

		return out, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func snap(c [2]float64) model.XY {
	return model.XY{X: model.Degrees(c[0]), Y: model.Degrees(c[1])}.Snap()
}

func snapAll(cs [][2]float64) []model.XY {
	out := make([]model.XY, len(cs))
	for i, c := range cs {
		out[i] = snap(c)
	}

	return out
}

func property(props map[string]any, key string) string {
	if v, ok := props[key]; ok {
		return stringify(v)
	}

	return ""
}

// attributes copies the uninterpreted properties into string form.
func attributes(props map[string]any) map[string]string {
	out := make(map[string]string, len(props))

	for k, v := range props {
		switch strings.ToLower(k) {
		case "energy", "facility", "status":
			continue
		}

		out[strings.ToLower(k)] = stringify(v)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)

		return string(b)
	}
}
