// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the users
// manipulation REST APIs to be accepted and delegated to the users
// use cases respectively.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. GET and POST requests to /user
//     in order to list all users or create a new one,
//  2. DELETE request to /user
//     in order to remove all users,
//  3. GET, PATCH, PUT, and DELETE requests to /user/:id
//     in order to show, partially update, replace, or delete one user.
//
// Requests of the third group load the :id user first and respond
// with 404 if it is missing, so their handlers never run.
func Register(r gin.IRouter, users *usersuc.UseCase) {
	rs := &resource{users: users}
	r.GET("user", rs.ListUsers)
	r.POST("user", rs.CreateUser)
	r.DELETE("user", rs.ClearUsers)
	u := r.Group("user/:id", rs.LoadUser)
	u.GET("", rs.ShowUser)
	u.PATCH("", rs.UpdateUser)
	u.PUT("", rs.ReplaceUser)
	u.DELETE("", rs.DeleteUser)
}

func (rs *resource) ListUsers(c *gin.Context) {
	us, err := rs.users.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, us)
}

func (rs *resource) CreateUser(c *gin.Context) {
	u := rs.DserUserReq(c)
	if u == nil {
		return
	}
	created, err := rs.users.Create(c, *u)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (rs *resource) ShowUser(c *gin.Context) {
	c.JSON(http.StatusOK, loadedUser(c))
}

func (rs *resource) UpdateUser(c *gin.Context) {
	p := &model.UserPatch{}
	if ok := serdser.Bind(c, p, serdser.OptionalJSON); !ok {
		return
	}
	updated, err := rs.users.Update(c, loadedUser(c), *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (rs *resource) ReplaceUser(c *gin.Context) {
	src := rs.DserUserReq(c)
	if src == nil {
		return
	}
	replaced, err := rs.users.Replace(c, loadedUser(c), *src)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, replaced)
}

func (rs *resource) DeleteUser(c *gin.Context) {
	if err := rs.users.Delete(c, loadedUser(c).ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (rs *resource) ClearUsers(c *gin.Context) {
	if _, err := rs.users.Clear(c); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}
