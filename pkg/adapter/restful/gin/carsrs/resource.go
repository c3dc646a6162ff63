// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// listing and creation REST APIs to be accepted and delegated to the
// cars use cases respectively.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/clean-crud/pkg/core/usecase/carsuc"
)

type resource struct {
	cars *carsuc.UseCase
}

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. GET request to /api/cars
//     in order to list all cars in their insertion order,
//  2. POST request to /api/cars
//     in order to append a new car, having name, color, and
//     milesDriven JSON fields.
//
// The r router is expected to be the /api group.
func Register(r gin.IRouter, cars *carsuc.UseCase) {
	rs := &resource{cars: cars}
	r.GET("cars", rs.ListCars)
	r.POST("cars", rs.CreateCar)
}

func (rs *resource) ListCars(c *gin.Context) {
	c.JSON(http.StatusOK, rs.cars.List(c))
}

func (rs *resource) CreateCar(c *gin.Context) {
	car := rs.DserCreateCarReq(c)
	if car == nil {
		return
	}
	c.JSON(http.StatusOK, rs.cars.Create(c, *car))
}
