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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liines/ames/model"
)

func TestParseEnergyType(t *testing.T) {
	for tok, want := range map[string]model.EnergyType{
		"elec":     model.Electric,
		"electric": model.Electric,
		"NG":       model.NaturalGas,
		"ng":       model.NaturalGas,
		"natgas":   model.NaturalGas,
		"oil":      model.Oil,
		"coal":     model.Coal,
		" Coal ":   model.Coal,
	} {
		e, err := model.ParseEnergyType(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, want, e, tok)
	}

	_, err := model.ParseEnergyType("plasma")
	assert.Error(t, err)
}

func TestEnergyTypeString(t *testing.T) {
	assert.Equal(t, "elec", model.Electric.String())
	assert.Equal(t, "NG", model.NaturalGas.String())
	assert.Equal(t, "oil", model.Oil.String())
	assert.Equal(t, "coal", model.Coal.String())
}

func TestParseRegion(t *testing.T) {
	for tok, want := range map[string]model.Region{
		"USA":                 model.USA,
		"NE_NY":               model.NortheastNY,
		"EastCoast":           model.EastCoast,
		"easterninterconnect": model.EasternInterconnect,
		"WestCoast":           model.WestCoast,
		"Texas":               model.Texas,
		"Central":             model.Central,
	} {
		r, err := model.ParseRegion(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, want, r, tok)
	}

	_, err := model.ParseRegion("Atlantis")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]model.Status{
		"RETIRED":         model.Retired,
		"NOT_OP":          model.Retired,
		"Shut Down":       model.Retired,
		"Closed":          model.Retired,
		"Out of Service":  model.Retired,
		"CANCELLED":       model.Canceled,
		"Cancelled":       model.Canceled,
		"CN":              model.Canceled,
		"Rejected":        model.Canceled,
		"Withdrawn":       model.Canceled,
		"Abandoned":       model.Canceled,
		"STANDBY":         model.Canceled,
		"PROPOSED":        model.Canceled,
		"DUPLICATE":       model.Duplicated,
		"":                model.Improper,
		"OP":              model.InService,
		"In Service":      model.InService,
		"something novel": model.InService,
	} {
		assert.Equal(t, want, model.ParseStatus(raw), "%q", raw)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, model.InService.Valid())
	assert.False(t, model.Duplicated.Valid())
	assert.False(t, model.Canceled.Valid())
	assert.False(t, model.Retired.Valid())
	assert.False(t, model.Improper.Valid())
}

func TestRawFeatureGeometry(t *testing.T) {
	site := model.RawFeature{Geometry: []model.XY{{X: 1, Y: 2}}}
	line := model.RawFeature{Line: true, Geometry: []model.XY{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}}
	stub := model.RawFeature{Line: true, Geometry: []model.XY{{X: 1, Y: 2}}}

	assert.False(t, site.IsLine())
	assert.True(t, line.IsLine())
	assert.True(t, stub.IsLine()) // kind is declared, not inferred from vertices
	assert.Equal(t, model.XY{X: 1, Y: 2}, line.Origin())
	assert.Equal(t, model.XY{X: 5, Y: 6}, line.Dest())
}
