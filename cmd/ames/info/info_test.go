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

package info

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liines/ames/model"
)

const collection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "geometry": {"type": "Point", "coordinates": [-71.06, 42.35]},
      "properties": {"energy": "elec", "facility": "substation", "status": "OP"}
    },
    {
      "geometry": {"type": "Point", "coordinates": [-70.9, 42.5]},
      "properties": {"energy": "NG", "facility": "compressor station", "status": "RETIRED"}
    },
    {
      "geometry": {"type": "LineString", "coordinates": [[-71.06, 42.35], [-70.9, 42.5]]},
      "properties": {"energy": "elec", "facility": "transmission line", "status": "OP"}
    }
  ]
}`

func TestRunInfo(t *testing.T) {
	rep := runInfo(strings.NewReader(collection), model.NortheastNY)

	assert.Equal(t, 3, rep.Features)
	assert.Equal(t, 2, rep.Sites)
	assert.Equal(t, 1, rep.Lines)
	assert.Equal(t, 2, rep.ByEnergy["elec"])
	assert.Equal(t, 1, rep.ByEnergy["NG"])
	assert.Equal(t, 2, rep.ByStatus["in-service"])
	assert.Equal(t, 1, rep.ByStatus["retired"])
}

func TestRenderJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	out = buf

	renderJSON(&report{
		Features: 3,
		Sites:    2,
		Lines:    1,
		ByEnergy: map[string]int{"elec": 2, "NG": 1},
		ByStatus: map[string]int{"in-service": 2, "retired": 1},
	})

	var rep report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))

	assert.Equal(t, 3, rep.Features)
	assert.Equal(t, 2, rep.ByEnergy["elec"])
}

func TestRenderTxt(t *testing.T) {
	buf := &bytes.Buffer{}
	out = buf

	renderTxt(&report{
		Features: 3,
		Sites:    2,
		Lines:    1,
		ByEnergy: map[string]int{"elec": 2, "NG": 1},
		ByStatus: map[string]int{"in-service": 2, "retired": 1},
	})

	txt := buf.String()

	assert.Contains(t, txt, "Features: 3")
	assert.Contains(t, txt, "Energy elec: 2")
	assert.Contains(t, txt, "Energy NG: 1")
	assert.Contains(t, txt, "Status in-service: 2")
	assert.Contains(t, txt, "Status retired: 1")
}
