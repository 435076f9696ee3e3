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

func TestBoundingBoxExpandWithXY(t *testing.T) {
	bbox := model.InitialBoundingBox()

	bbox.ExpandWithXY(model.XY{X: -71.0602, Y: 42.3584})
	bbox.ExpandWithXY(model.XY{X: -70.2568, Y: 43.6615})

	assert.Equal(t, model.Degrees(43.6615), bbox.Top)
	assert.Equal(t, model.Degrees(42.3584), bbox.Bottom)
	assert.Equal(t, model.Degrees(-71.0602), bbox.Left)
	assert.Equal(t, model.Degrees(-70.2568), bbox.Right)
}

func TestBoundingBoxContains(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithXY(model.XY{X: -71.0602, Y: 42.3584})
	bbox.ExpandWithXY(model.XY{X: -70.2568, Y: 43.6615})

	assert.True(t, bbox.Contains(model.XY{X: -70.9, Y: 43.0}))
	assert.False(t, bbox.Contains(model.XY{X: -74.0060, Y: 40.7128}))
}

func TestBoundingBoxExpandWithBoundingBox(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithXY(model.XY{X: -71.0602, Y: 42.3584})

	other := model.InitialBoundingBox()
	other.ExpandWithXY(model.XY{X: -70.2568, Y: 43.6615})

	bbox.ExpandWithBoundingBox(other)

	assert.True(t, bbox.Contains(model.XY{X: -70.9, Y: 43.0}))
}

func TestBoundingBoxEqualWithin(t *testing.T) {
	bbox := &model.BoundingBox{Top: 43.6615, Left: -71.0602, Bottom: 42.3584, Right: -70.2568}

	assert.True(t, bbox.EqualWithin(bbox, model.E9))
}

func TestBoundingBoxString(t *testing.T) {
	bbox := &model.BoundingBox{Top: 43.6615, Left: -71.0602, Bottom: 42.3584, Right: -70.2568}

	assert.Equal(t, "[(43.6615, -71.0602) (42.3584, -70.2568)]", bbox.String())
}
