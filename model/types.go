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

// Package model contains the shared model for the energy-infrastructure
// network pipeline: coordinates, raw facility records, and the assembled
// node/edge graph.
package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s1"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Angle represents a 1D angle in radians.
type Angle s1.Angle

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

// Degrees units.
const (
	Degree           Degrees = 1
	radiansPerPi             = 180
	Radian                   = (radiansPerPi / math.Pi) * Degree
	MinutesPerDegree         = 60
	SecondsPerDegree         = 3600

	E4 Epsilon = 1e-4
	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E9 Epsilon = 1e-9

	TenThousandths = 10_000

	Half = 0.5
)

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

func (d Degrees) String() string {
	var sign string
	if d < 0 {
		sign = "-"
	}

	val := math.Abs(float64(d))
	degrees := int(math.Floor(val))
	minutes := int(math.Floor(MinutesPerDegree * (val - float64(degrees))))
	seconds := SecondsPerDegree * (val - float64(degrees) - (float64(minutes) / MinutesPerDegree))

	return fmt.Sprintf("%s%d° %d' %s\"", sign, degrees, minutes, ftoa(seconds))
}

// MarshalJSON renders the degree as a plain decimal number.
func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// EqualWithin checks if two angles are within a specific epsilon.
func (d Angle) EqualWithin(o Angle, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// E4 returns the angle in ten thousandths of degrees.
func (d Degrees) E4() int32 { return round(float64(d * TenThousandths)) }

// Snap rounds the degree to four decimal places, the precision at which the
// facility layers are digitized. Independently exported layers only agree on
// shared positions after snapping.
func (d Degrees) Snap() Degrees {
	return Degrees(d.E4()) / TenThousandths
}

// round returns the value rounded to nearest as an int32.
func round(val float64) int32 {
	if val < 0 {
		return int32(val - Half)
	}

	return int32(val + Half)
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

func ftoa(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// XY is a planar position in the coordinate reference system of the input
// geometry, longitude first.
type XY struct {
	X Degrees `json:"x"`
	Y Degrees `json:"y"`
}

// Snap rounds both coordinates to four decimal places.
func (p XY) Snap() XY {
	return XY{X: p.X.Snap(), Y: p.Y.Snap()}
}

// DistanceTo returns the planar Euclidean distance to o in degrees.
func (p XY) DistanceTo(o XY) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)

	return math.Sqrt(dx*dx + dy*dy)
}

func (p XY) String() string {
	return fmt.Sprintf("(%s, %s)", ftoa(float64(p.X)), ftoa(float64(p.Y)))
}
