// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the
// cars related use cases. Currently, two uses cases are supported:
//  1. Listing all cars,
//  2. Creating a car.
//
// Cars are not persisted in a database. They are kept in the UseCase
// instance itself, so they live as long as the web server process.
package carsuc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/momeni/clean-crud/pkg/core/log"
	"github.com/momeni/clean-crud/pkg/core/model"
)

// UseCase represents a cars use case. It holds the list of created
// cars in their creation order. The list is guarded by mu, so the
// UseCase may be used by concurrent requests.
type UseCase struct {
	mu   sync.RWMutex
	cars []model.Car
}

// New instantiates a cars use case.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(opts ...Option) (*UseCase, error) {
	uc := &UseCase{}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// List use case returns all cars which are created since the process
// start, in their creation order. Returned slice is a copy, so caller
// may modify it freely. It is non-nil even if there is no car.
func (cars *UseCase) List(ctx context.Context) []model.Car {
	cars.mu.RLock()
	defer cars.mu.RUnlock()
	list := make([]model.Car, len(cars.cars))
	copy(list, cars.cars)
	return list
}

// Create use case appends the c car to the cars list and returns it.
// Caller is responsible to validate presence of all fields.
func (cars *UseCase) Create(ctx context.Context, c model.Car) *model.Car {
	cars.mu.Lock()
	cars.cars = append(cars.cars, c)
	n := len(cars.cars)
	cars.mu.Unlock()
	log.Debug(
		ctx, "car is created",
		slog.String("name", c.Name), slog.Int("count", n),
	)
	return &c
}

// Len returns the number of created cars.
func (cars *UseCase) Len() int {
	cars.mu.RLock()
	defer cars.mu.RUnlock()
	return len(cars.cars)
}
