// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dirsrs

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
)

const dirKey = "dirsrs.dir"

type rawDirReq struct {
	Label       *string `json:"label" binding:"required"`
	PhoneNumber *int64  `json:"phoneNumber" binding:"required"`
}

// DserDirReq decodes the complete set of directory fields. Both fields
// are required for the create and replace operations, although the
// replace operation ignores the phoneNumber afterwards.
func (rs *resource) DserDirReq(c *gin.Context) *model.Directory {
	req := &rawDirReq{}
	if ok := serdser.Bind(c, req, serdser.JSON); !ok {
		return nil
	}
	return &model.Directory{
		Label:       *req.Label,
		PhoneNumber: *req.PhoneNumber,
	}
}

// LoadDir fetches the :id directory, like usersrs.LoadUser.
func (rs *resource) LoadDir(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		serdser.SerErr(c, cerr.NotFound(
			fmt.Errorf("invalid directory id: %q", rawID),
		))
		c.Abort()
		return
	}
	d, err := rs.dirs.Fetch(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		c.Abort()
		return
	}
	c.Set(dirKey, d)
	c.Next()
}

func loadedDir(c *gin.Context) *model.Directory {
	return c.MustGet(dirKey).(*model.Directory)
}
