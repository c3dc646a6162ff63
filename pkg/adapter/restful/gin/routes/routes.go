// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// registration of them based on the instantiated use cases.
// Use cases are instantiated by the config package (in production) or
// by tests (possibly with fake repositories), so the route table stays
// independent of the persistence layer.
package routes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/dirsrs"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/miscrs"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/clean-crud/pkg/core/usecase/carsuc"
	"github.com/momeni/clean-crud/pkg/core/usecase/dirsuc"
	"github.com/momeni/clean-crud/pkg/core/usecase/usersuc"
)

// UseCases groups the use case instances which are adapted by the
// resource packages. All fields are mandatory.
type UseCases struct {
	Cars  *carsuc.UseCase
	Users *usersuc.UseCase
	Dirs  *dirsuc.UseCase
}

// Register instantiates a "resource" struct, from packages which are
// named like carsrs, for each use case of uc in order to adapt the use
// cases interfaces with the REST APIs. These resources are registered
// as request handlers using the e gin-gonic engine instance:
//
//	/api/cars       carsrs
//	/user[/:id]     usersrs
//	/dir[/:id]      dirsrs
//	/hello, /plaintext, /info, /description  miscrs
func Register(e *gin.Engine, uc UseCases) error {
	switch {
	case uc.Cars == nil:
		return errors.New("cars use case is missing")
	case uc.Users == nil:
		return errors.New("users use case is missing")
	case uc.Dirs == nil:
		return errors.New("directories use case is missing")
	}
	miscrs.Register(e)
	carsrs.Register(e.Group("/api"), uc.Cars)
	usersrs.Register(e, uc.Users)
	dirsrs.Register(e, uc.Dirs)
	return nil
}
