// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/clean-crud/pkg/core/model"
)

// DserCreateCarReq decodes a car from the request body. Every field
// which is missing, null, or has an unexpected JSON type is reported as
// "Missing <field>" and all such fields are reported together with the
// 412 status code. A body which is not a JSON object reports all fields.
// A nil car is returned if the response is already written.
func (rs *resource) DserCreateCarReq(c *gin.Context) *model.Car {
	var raw map[string]json.RawMessage
	if body, err := c.GetRawData(); err == nil {
		if err = json.Unmarshal(body, &raw); err != nil {
			raw = nil
		}
	}
	car := &model.Car{}
	var errs map[string][]string
	serdser.Assert(
		&errs, decodeField(raw, "name", &car.Name),
		"name", "Missing name",
	)
	serdser.Assert(
		&errs, decodeField(raw, "color", &car.Color),
		"color", "Missing color",
	)
	serdser.Assert(
		&errs, decodeField(raw, "milesDriven", &car.MilesDriven),
		"milesDriven", "Missing milesDriven",
	)
	if errs != nil {
		c.JSON(http.StatusPreconditionFailed, errs)
		return nil
	}
	return car
}

func decodeField(raw map[string]json.RawMessage, name string, dst any) bool {
	v, ok := raw[name]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return false
	}
	return json.Unmarshal(v, dst) == nil
}
