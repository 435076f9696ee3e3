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

	"github.com/liines/ames/model"
)

func TestDegreesAngle(t *testing.T) {
	assert.True(t, model.Angle(0.78539816).EqualWithin(model.Degrees(45.0).Angle(), model.E6))
}

func TestDegreesE4(t *testing.T) {
	assert.Equal(t, int32(531235), model.Degrees(53.123456789).E4())
	assert.Equal(t, int32(-531235), model.Degrees(-53.123456789).E4())
}

func TestDegreesSnap(t *testing.T) {
	assert.Equal(t, model.Degrees(53.1235), model.Degrees(53.123456789).Snap())
	assert.Equal(t, model.Degrees(-71.0602), model.Degrees(-71.06018).Snap())
	assert.Equal(t, model.Degrees(0), model.Degrees(0).Snap())
}

func TestDegreesEqualWithin(t *testing.T) {
	assert.True(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123454), model.E5))
	assert.False(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123455), model.E5))
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees("53.123450")
	if err != nil {
		t.Error(err)
	}

	assert.True(t, model.Degrees(53.123450).EqualWithin(d, model.E5))

	_, err = model.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}
}

func TestXYSnap(t *testing.T) {
	p := model.XY{X: -71.06018, Y: 42.35843}

	assert.Equal(t, model.XY{X: -71.0602, Y: 42.3584}, p.Snap())
}

func TestXYDistanceTo(t *testing.T) {
	a := model.XY{X: 0, Y: 0}
	b := model.XY{X: 3, Y: 4}

	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-12)
	assert.InDelta(t, 5.0, b.DistanceTo(a), 1e-12)
	assert.Zero(t, a.DistanceTo(a))
}

func TestXYString(t *testing.T) {
	assert.Equal(t, "(-71.0602, 42.3584)", model.XY{X: -71.0602, Y: 42.3584}.String())
}
