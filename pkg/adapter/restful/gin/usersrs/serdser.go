// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrs

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
)

const userKey = "usersrs.user"

type rawUserReq struct {
	Name *string `json:"name" binding:"required"`
}

// DserUserReq decodes the complete set of user fields, as needed by
// the create and replace operations. A nil user is returned if the
// 400 response is already written.
func (rs *resource) DserUserReq(c *gin.Context) *model.User {
	req := &rawUserReq{}
	if ok := serdser.Bind(c, req, serdser.JSON); !ok {
		return nil
	}
	return &model.User{Name: *req.Name}
}

// LoadUser is a middleware which fetches the user which is identified
// by the :id path parameter and keeps it in the c context for the
// next handlers. A malformed or unknown id aborts with 404.
func (rs *resource) LoadUser(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		serdser.SerErr(c, cerr.NotFound(
			fmt.Errorf("invalid user id: %q", rawID),
		))
		c.Abort()
		return
	}
	u, err := rs.users.Fetch(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		c.Abort()
		return
	}
	c.Set(userKey, u)
	c.Next()
}

func loadedUser(c *gin.Context) *model.User {
	return c.MustGet(userKey).(*model.User)
}
