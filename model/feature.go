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
	"strings"
)

// EnergyType is the closed set of energy sectors the pipeline handles.
type EnergyType int32

const (
	// Electric denotes the electric power sector.
	Electric EnergyType = iota

	// NaturalGas denotes the natural gas sector.
	NaturalGas

	// Oil denotes the oil sector.
	Oil

	// Coal denotes the coal sector.
	Coal
)

var energyTokens = map[EnergyType]string{
	Electric:   "elec",
	NaturalGas: "NG",
	Oil:        "oil",
	Coal:       "coal",
}

func (e EnergyType) String() string {
	if tok, ok := energyTokens[e]; ok {
		return tok
	}

	return fmt.Sprintf("EnergyType(%d)", int32(e))
}

// ParseEnergyType converts a CLI token to an EnergyType.
func ParseEnergyType(tok string) (EnergyType, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "elec", "electric":
		return Electric, nil
	case "ng", "natgas", "natural-gas", "naturalgas":
		return NaturalGas, nil
	case "oil":
		return Oil, nil
	case "coal":
		return Coal, nil
	default:
		return 0, fmt.Errorf("unknown energy type %q, expected one of elec, NG, oil, coal", tok)
	}
}

// Region is the closed set of geographical selections input data is exported
// for.
type Region int32

const (
	// USA covers the contiguous United States.
	USA Region = iota

	// NortheastNY covers New England and New York.
	NortheastNY

	// EastCoast covers the eastern seaboard.
	EastCoast

	// EasternInterconnect covers the eastern synchronous grid.
	EasternInterconnect

	// WestCoast covers the western seaboard.
	WestCoast

	// Texas covers the ERCOT footprint.
	Texas

	// Central covers the central interior.
	Central
)

var regionTokens = map[Region]string{
	USA:                 "USA",
	NortheastNY:         "NE_NY",
	EastCoast:           "EastCoast",
	EasternInterconnect: "EasternInterconnect",
	WestCoast:           "WestCoast",
	Texas:               "Texas",
	Central:             "Central",
}

func (r Region) String() string {
	if tok, ok := regionTokens[r]; ok {
		return tok
	}

	return fmt.Sprintf("Region(%d)", int32(r))
}

// ParseRegion converts a CLI token to a Region.
func ParseRegion(tok string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "usa", "us":
		return USA, nil
	case "ne_ny", "northeast-ny", "neny":
		return NortheastNY, nil
	case "eastcoast", "east-coast":
		return EastCoast, nil
	case "easterninterconnect", "eastern-interconnect":
		return EasternInterconnect, nil
	case "westcoast", "west-coast":
		return WestCoast, nil
	case "texas", "tx":
		return Texas, nil
	case "central":
		return Central, nil
	default:
		return 0, fmt.Errorf("unknown region %q, expected one of USA, NE_NY, EastCoast, EasternInterconnect, WestCoast, Texas, Central", tok)
	}
}

// Status is the canonical record status after normalizing the many codes the
// source layers use.
type Status int32

const (
	// InService marks a record as operating and usable.
	InService Status = iota

	// Duplicated marks a record as a re-digitization of another record.
	Duplicated

	// Canceled marks a record that was planned or proposed but never built.
	Canceled

	// Retired marks a record that is no longer operating.
	Retired

	// Improper marks a record whose status or geometry is unusable.
	Improper
)

var statusNames = map[Status]string{
	InService:  "in-service",
	Duplicated: "duplicated",
	Canceled:   "canceled",
	Retired:    "retired",
	Improper:   "improper",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Status(%d)", int32(s))
}

// Valid reports whether a record with this status may enter the pipeline.
func (s Status) Valid() bool { return s == InService }

// rawStatuses maps the status codes observed across the source layers to
// their canonical status. Each sector's export uses its own vocabulary.
var rawStatuses = map[string]Status{
	"RETIRED":        Retired,
	"NOT_OP":         Retired,
	"SHUT DOWN":      Retired,
	"CLOSED":         Retired,
	"OUT OF SERVICE": Retired,
	"SOLD AND DISMANTLED (WAS: SOLD TO AND OPERATED BY NON-UTILITY)": Retired,

	"CANCELLED": Canceled,
	"CANCELED":  Canceled,
	"CN":        Canceled,
	"REJECTED":  Canceled,
	"WITHDRAWN": Canceled,
	"ABANDONED": Canceled,
	"STANDBY":   Canceled,
	"PROPOSED":  Canceled,
	"PLANNED GENERATOR INDEFINITELY POSTPONED": Canceled,

	"DUPLICATE":  Duplicated,
	"DUPLICATED": Duplicated,
}

// ParseStatus normalizes a raw status code from a source layer. Codes with no
// mapping are treated as in-service; a missing code is improper.
func ParseStatus(raw string) Status {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return Improper
	}

	if s, ok := rawStatuses[code]; ok {
		return s
	}

	return InService
}

// RawFeature is one input geometric record as supplied by the feature
// loader. It is immutable once loaded.
type RawFeature struct {
	ID       int64
	Energy   EnergyType
	Facility string // facility-type code of the source layer
	Status   Status
	Region   Region

	// Line records the declared geometry kind of the source record. It is
	// independent of the vertex count: a polyline record with too few
	// vertices is still a line, just an improperly defined one.
	Line bool

	// Geometry holds one vertex for a site feature and two or more ordered
	// vertices for a line feature.
	Geometry []XY

	// Attributes carries the remaining source attributes (name, fuel, prime
	// mover, capacity) opaquely.
	Attributes map[string]string
}

// IsLine reports whether the feature is a polyline.
func (f RawFeature) IsLine() bool { return f.Line }

// Origin returns the first vertex of the geometry.
func (f RawFeature) Origin() XY { return f.Geometry[0] }

// Dest returns the last vertex of the geometry.
func (f RawFeature) Dest() XY { return f.Geometry[len(f.Geometry)-1] }
