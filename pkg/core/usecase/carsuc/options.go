// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import (
	"errors"
	"fmt"

	"github.com/momeni/clean-crud/pkg/core/model"
)

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithCars option configures a cars UseCase instance in order to start
// with the given cars (in the same order) instead of an empty list.
// All cars must have non-empty name and color. This option may be
// passed to the New() function at most once.
func WithCars(cars ...model.Car) Option {
	return func(uc *UseCase) error {
		if uc.cars != nil {
			return errors.New("cars are already configured")
		}
		for i, c := range cars {
			if c.Name == "" || c.Color == "" {
				return fmt.Errorf("car #%d has no name or color", i)
			}
		}
		uc.cars = append(make([]model.Car, 0, len(cars)), cars...)
		return nil
	}
}
