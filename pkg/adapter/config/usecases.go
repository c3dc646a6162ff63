// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/usecase/carsuc"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Cars Cars // cars use cases related settings
}

// Cars contains the configuration settings for the cars use cases.
type Cars struct {
	// Seed lists the cars which are available when the web server
	// starts. Cars are kept in memory, so created cars are lost when
	// the server stops and the seed cars are restored on the next run.
	Seed []Car `yaml:"seed,omitempty"`
}

// Car is one seed car. Its fields are copied into a model.Car.
type Car struct {
	Name        string
	Color       string
	MilesDriven int `yaml:"miles-driven"`
}

// Validate ensures that all seed cars have a name and a color.
func (c Cars) Validate() error {
	for i, car := range c.Seed {
		if car.Name == "" || car.Color == "" {
			return fmt.Errorf("seed car #%d needs a name and a color", i)
		}
	}
	return nil
}

// NewUseCase instantiates a new cars use case based on the settings
// in the `c` struct.
func (c Cars) NewUseCase() (*carsuc.UseCase, error) {
	opts := make([]carsuc.Option, 0, 1)
	if len(c.Seed) > 0 {
		cars := make([]model.Car, len(c.Seed))
		for i, car := range c.Seed {
			cars[i] = model.Car{
				Name:        car.Name,
				Color:       car.Color,
				MilesDriven: car.MilesDriven,
			}
		}
		opts = append(opts, carsuc.WithCars(cars...))
	}
	return carsuc.New(opts...)
}
