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
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/liines/ames/model"
)

const (
	// DefaultTolerance is the endpoint clustering radius, about 0.1 mile.
	DefaultTolerance model.Degrees = 0.001446

	// DefaultSnapRadius seeds the isolated-node neighbor search, about 1 mile.
	DefaultSnapRadius model.Degrees = 0.014465

	// DefaultMaxRepairRadius bounds the isolated-node neighbor search, about
	// 35 miles.
	DefaultMaxRepairRadius model.Degrees = 0.5075
)

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// pipelineOptions provides optional configuration parameters for a Build run.
// Fields are exported for the validation pass only.
type pipelineOptions struct {
	Tolerance       model.Degrees `validate:"gt=0"`
	SnapRadius      model.Degrees `validate:"gt=0"`
	MaxRepairRadius model.Degrees `validate:"gtfield=SnapRadius"`

	NCPU uint16 `validate:"gte=1"`

	Energies []model.EnergyType `validate:"min=1"`
	Region   model.Region

	JoinChains bool
}

// Option configures how we set up the pipeline.
type Option func(*pipelineOptions)

// WithTolerance lets you set the endpoint clustering radius.
func WithTolerance(tau model.Degrees) Option {
	return func(o *pipelineOptions) {
		o.Tolerance = tau
	}
}

// WithSnapRadius lets you set the initial isolated-node search radius.
func WithSnapRadius(r model.Degrees) Option {
	return func(o *pipelineOptions) {
		o.SnapRadius = r
	}
}

// WithMaxRepairRadius lets you set the maximum isolated-node search radius.
func WithMaxRepairRadius(r model.Degrees) Option {
	return func(o *pipelineOptions) {
		o.MaxRepairRadius = r
	}
}

// WithNCpus lets you set the number of CPUs to use for stage processing.
func WithNCpus(n uint16) Option {
	return func(o *pipelineOptions) {
		o.NCPU = n
	}
}

// WithEnergyTypes lets you restrict the run to a subset of energy sectors.
func WithEnergyTypes(energies ...model.EnergyType) Option {
	return func(o *pipelineOptions) {
		o.Energies = energies
	}
}

// WithRegion lets you set the region selection features must match.
func WithRegion(r model.Region) Option {
	return func(o *pipelineOptions) {
		o.Region = r
	}
}

// WithoutChainJoining disables the merging of facility runs through
// synthetic degree-two junctions.
func WithoutChainJoining() Option {
	return func(o *pipelineOptions) {
		o.JoinChains = false
	}
}

// defaultPipelineConfig provides a default configuration for pipelines.
func defaultPipelineConfig() pipelineOptions {
	return pipelineOptions{
		Tolerance:       DefaultTolerance,
		SnapRadius:      DefaultSnapRadius,
		MaxRepairRadius: DefaultMaxRepairRadius,
		NCPU:            DefaultNCpu(),
		Energies:        []model.EnergyType{model.Electric, model.NaturalGas, model.Oil, model.Coal},
		Region:          model.USA,
		JoinChains:      true,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (o *pipelineOptions) validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (o *pipelineOptions) selected(e model.EnergyType) bool {
	for _, s := range o.Energies {
		if s == e {
			return true
		}
	}

	return false
}
