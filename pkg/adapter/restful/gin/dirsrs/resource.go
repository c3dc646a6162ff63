// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dirsrs realizes the phone directories resource, allowing
// the directories manipulation REST APIs to be accepted and delegated
// to the directories use cases respectively.
package dirsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/usecase/dirsuc"
)

type resource struct {
	dirs *dirsuc.UseCase
}

// Register instantiates a resource adapting the directories use case
// instance with the relevant REST APIs including:
//  1. GET and POST requests to /dir
//     in order to list all directories or create a new one,
//  2. DELETE request to /dir
//     in order to remove all directories,
//  3. GET, PATCH, PUT, and DELETE requests to /dir/:id
//     in order to show, partially update, replace, or delete one
//     directory entry.
//
// Only the label may be changed by the PATCH and PUT requests and the
// phoneNumber is kept as it was created. Requests of the third group
// load the :id directory first and respond with 404 if it is missing.
func Register(r gin.IRouter, dirs *dirsuc.UseCase) {
	rs := &resource{dirs: dirs}
	r.GET("dir", rs.ListDirs)
	r.POST("dir", rs.CreateDir)
	r.DELETE("dir", rs.ClearDirs)
	d := r.Group("dir/:id", rs.LoadDir)
	d.GET("", rs.ShowDir)
	d.PATCH("", rs.UpdateDir)
	d.PUT("", rs.ReplaceDir)
	d.DELETE("", rs.DeleteDir)
}

func (rs *resource) ListDirs(c *gin.Context) {
	ds, err := rs.dirs.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (rs *resource) CreateDir(c *gin.Context) {
	d := rs.DserDirReq(c)
	if d == nil {
		return
	}
	created, err := rs.dirs.Create(c, *d)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (rs *resource) ShowDir(c *gin.Context) {
	c.JSON(http.StatusOK, loadedDir(c))
}

func (rs *resource) UpdateDir(c *gin.Context) {
	p := &model.DirectoryPatch{}
	if ok := serdser.Bind(c, p, serdser.OptionalJSON); !ok {
		return
	}
	updated, err := rs.dirs.Update(c, loadedDir(c), *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (rs *resource) ReplaceDir(c *gin.Context) {
	src := rs.DserDirReq(c)
	if src == nil {
		return
	}
	replaced, err := rs.dirs.Replace(c, loadedDir(c), *src)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, replaced)
}

func (rs *resource) DeleteDir(c *gin.Context) {
	if err := rs.dirs.Delete(c, loadedDir(c).ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (rs *resource) ClearDirs(c *gin.Context) {
	if _, err := rs.dirs.Clear(c); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}
