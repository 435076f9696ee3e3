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

// Package taxonomy maps raw facility-type codes and fuel names onto the
// standardized physical-resource categories of the reference architecture.
// The tables live in an embedded YAML document so each energy type's
// vocabulary is data, not code.
package taxonomy

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/liines/ames/model"
)

//go:embed tables.yaml
var rawTables []byte

// FuelOther is the refinement assigned to fuels missing from the tables.
const FuelOther = "other"

type energyTable struct {
	Nodes       map[string]model.Category `yaml:"nodes"`
	Edges       map[string]model.Category `yaml:"edges"`
	Priority    []model.Category          `yaml:"priority"`
	Buffer      model.Category            `yaml:"buffer"`
	Connector   model.Category            `yaml:"connector"`
	PrimeMovers map[string]model.Category `yaml:"prime movers"`
}

type tables struct {
	Energies map[string]energyTable `yaml:"energies"`
	Fuels    map[string][]string    `yaml:"fuels"`
}

// Taxonomy answers category lookups for every energy type. Lookups are
// case-insensitive over facility codes, prime movers, and fuel names.
type Taxonomy struct {
	energies map[model.EnergyType]energyTable
	rank     map[model.EnergyType]map[model.Category]int
	fuels    map[string]string
}

var (
	loadOnce sync.Once
	loaded   *Taxonomy
	loadErr  error
)

// Load parses the embedded tables. The parse happens once; subsequent calls
// return the same Taxonomy.
func Load() (*Taxonomy, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parse(rawTables)
	})

	return loaded, loadErr
}

func parse(raw []byte) (*Taxonomy, error) {
	var t tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("unable to parse category tables: %w", err)
	}

	tx := &Taxonomy{
		energies: make(map[model.EnergyType]energyTable, len(t.Energies)),
		rank:     make(map[model.EnergyType]map[model.Category]int, len(t.Energies)),
		fuels:    make(map[string]string),
	}

	for token, et := range t.Energies {
		e, err := model.ParseEnergyType(token)
		if err != nil {
			return nil, fmt.Errorf("unable to parse category tables: %w", err)
		}

		tx.energies[e] = fold(et)

		ranks := make(map[model.Category]int, len(et.Priority))
		for i, c := range et.Priority {
			ranks[c] = i
		}

		tx.rank[e] = ranks
	}

	for refinement, names := range t.Fuels {
		for _, name := range names {
			tx.fuels[strings.ToLower(name)] = refinement
		}
	}

	return tx, nil
}

func fold(et energyTable) energyTable {
	et.Nodes = foldKeys(et.Nodes)
	et.Edges = foldKeys(et.Edges)
	et.PrimeMovers = foldKeys(et.PrimeMovers)

	return et
}

func foldKeys(m map[string]model.Category) map[string]model.Category {
	out := make(map[string]model.Category, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}

	return out
}

// NodeCategory resolves a point facility's category. A prime mover override
// is applied when present, so a power plant driven by a wind turbine lands in
// the stochastic generation category rather than the controlled one.
func (t *Taxonomy) NodeCategory(e model.EnergyType, facility, primeMover string) (model.Category, bool) {
	et, ok := t.energies[e]
	if !ok {
		return model.Unclassified, false
	}

	if c, ok := et.PrimeMovers[strings.ToLower(primeMover)]; ok {
		return c, true
	}

	c, ok := et.Nodes[strings.ToLower(facility)]

	return c, ok
}

// EdgeCategory resolves a line facility's category.
func (t *Taxonomy) EdgeCategory(e model.EnergyType, facility string) (model.Category, bool) {
	et, ok := t.energies[e]
	if !ok {
		return model.Unclassified, false
	}

	c, ok := et.Edges[strings.ToLower(facility)]

	return c, ok
}

// BufferCategory is the category given to synthetic junction nodes.
func (t *Taxonomy) BufferCategory(e model.EnergyType) model.Category {
	return t.energies[e].Buffer
}

// ConnectorCategory is the category given to synthesized connector edges.
func (t *Taxonomy) ConnectorCategory(e model.EnergyType) model.Category {
	return t.energies[e].Connector
}

// Primary picks the highest-priority category among those contributed to a
// node by conflicting facility records. Categories outside the energy type's
// priority list lose to every listed one; among unlisted categories the first
// contributed wins.
func (t *Taxonomy) Primary(e model.EnergyType, categories []model.Category) model.Category {
	ranks := t.rank[e]
	best := model.Unclassified
	bestRank := len(ranks) + 1

	for _, c := range categories {
		if c == model.Unclassified {
			continue
		}

		r, ok := ranks[c]
		if !ok {
			r = len(ranks)
		}

		if r < bestRank {
			best, bestRank = c, r
		}
	}

	return best
}

// NormalizeFuel maps a raw fuel attribute onto its canonical refinement. The
// second return reports whether the fuel was recognized; unrecognized fuels
// come back as FuelOther.
func (t *Taxonomy) NormalizeFuel(raw string) (string, bool) {
	if refinement, ok := t.fuels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return refinement, true
	}

	return FuelOther, false
}
