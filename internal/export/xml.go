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

// Package export serializes an assembled network graph into the LFES XML
// document consumed by downstream analysis tooling, optionally compressed.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/liines/ames/internal/taxonomy"
	"github.com/liines/ames/model"
)

// Meta carries the document-level attributes of an export.
type Meta struct {
	Name      string
	Region    model.Region
	DataState string
}

// Document is the LFES XML root: the fuel operand vocabulary, one Buffer per
// node, and one Transporter per edge.
type Document struct {
	XMLName   xml.Name `xml:"LFES"`
	Name      string   `xml:"name,attr"`
	Type      string   `xml:"type,attr"`
	DataState string   `xml:"dataState,attr"`
	Region    string   `xml:"region,attr,omitempty"`

	Operands     []Operand     `xml:"Operand"`
	Buffers      []Buffer      `xml:"Buffer"`
	Transporters []Transporter `xml:"Transporter"`
}

// Operand names one canonical fuel refinement present in the network.
type Operand struct {
	Name string `xml:"name,attr"`
}

// Buffer is a node element.
type Buffer struct {
	Name       string `xml:"name,attr"`
	GpsX       string `xml:"gpsX,attr"`
	GpsY       string `xml:"gpsY,attr"`
	Category   string `xml:"category,attr,omitempty"`
	Origin     string `xml:"origin,attr"`
	Unresolved bool   `xml:"unresolved,attr,omitempty"`
}

// Transporter is an edge element.
type Transporter struct {
	Name     string `xml:"name,attr"`
	FromBus  string `xml:"origin,attr"`
	ToBus    string `xml:"dest,attr"`
	Energy   string `xml:"energy,attr"`
	Category string `xml:"category,attr,omitempty"`
	Origin   string `xml:"originKind,attr"`
}

// Build assembles the Document for a graph without writing it.
func Build(g *model.Graph, meta Meta) (*Document, error) {
	tx, err := taxonomy.Load()
	if err != nil {
		return nil, err
	}

	state := meta.DataState
	if state == "" {
		state = "raw"
	}

	doc := &Document{
		Name:      meta.Name,
		Type:      "Energy System",
		DataState: state,
		Region:    meta.Region.String(),
	}

	doc.Operands = operands(tx, g)

	names := make([]string, len(g.Nodes))

	for i, n := range g.Nodes {
		names[i] = nodeName(&n)
		doc.Buffers = append(doc.Buffers, Buffer{
			Name:       names[i],
			GpsX:       strconv.FormatFloat(float64(n.Position.X), 'f', -1, 64),
			GpsY:       strconv.FormatFloat(float64(n.Position.Y), 'f', -1, 64),
			Category:   string(n.Category),
			Origin:     n.Origin.String(),
			Unresolved: n.Unresolved,
		})
	}

	for _, e := range g.Edges {
		doc.Transporters = append(doc.Transporters, Transporter{
			Name:     fmt.Sprintf("%s %d", e.Facility, e.ID),
			FromBus:  names[e.From],
			ToBus:    names[e.To],
			Energy:   e.Energy.String(),
			Category: string(e.Category),
			Origin:   e.Origin.String(),
		})
	}

	return doc, nil
}

// Write serializes the graph as indented XML through the selected compression
// codec.
func Write(w io.Writer, g *model.Graph, meta Meta, c Compression) error {
	doc, err := Build(g, meta)
	if err != nil {
		return err
	}

	pw, err := c.NewWriter(w)
	if err != nil {
		return fmt.Errorf("unable to open %s writer: %w", c, err)
	}

	if _, err := io.WriteString(pw, xml.Header); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}

	enc := xml.NewEncoder(pw)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}

	if err := pw.Close(); err != nil {
		return fmt.Errorf("unable to flush %s writer: %w", c, err)
	}

	return nil
}

// operands collects the canonical fuel refinements contributed by node
// facility attributes, sorted for a stable document.
func operands(tx *taxonomy.Taxonomy, g *model.Graph) []Operand {
	seen := make(map[string]bool)

	for _, n := range g.Nodes {
		for _, ref := range n.Refs {
			if fuel, ok := ref.Attributes["fuel"]; ok {
				refinement, _ := tx.NormalizeFuel(fuel)
				seen[refinement] = true
			}
		}
	}

	fuels := make([]string, 0, len(seen))
	for f := range seen {
		fuels = append(fuels, f)
	}

	sort.Strings(fuels)

	ops := make([]Operand, len(fuels))
	for i, f := range fuels {
		ops[i] = Operand{Name: f}
	}

	return ops
}

func nodeName(n *model.Node) string {
	for _, ref := range n.Refs {
		if name, ok := ref.Attributes["name"]; ok && name != "" {
			return name
		}
	}

	if n.Origin == model.Synthetic {
		return fmt.Sprintf("IndBuffer %d", n.ID)
	}

	return fmt.Sprintf("Buffer %d", n.ID)
}
