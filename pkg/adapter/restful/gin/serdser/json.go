// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
)

// ErrEmptyBody is reported by the JSON binding when a request has no
// body at all.
var ErrEmptyBody = errors.New("request body is empty")

// jsonBinding decodes the request body as exactly one JSON value, so
// trailing data after it is rejected as a syntax error. An empty body
// is accepted (leaving the destination object untouched) only if
// allowEmpty is set.
type jsonBinding struct {
	allowEmpty bool
}

var (
	// JSON binds a mandatory JSON body, e.g., for create and replace.
	JSON binding.BindingBody = jsonBinding{}

	// OptionalJSON binds a JSON body which may be omitted entirely,
	// e.g., for patches whose keys are all optional.
	OptionalJSON binding.BindingBody = jsonBinding{allowEmpty: true}
)

func (jsonBinding) Name() string {
	return "json"
}

func (b jsonBinding) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return b.BindBody(nil, obj)
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	return b.BindBody(body, obj)
}

func (b jsonBinding) BindBody(body []byte, obj any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		if !b.allowEmpty {
			return ErrEmptyBody
		}
	} else if err := json.Unmarshal(body, obj); err != nil {
		return err
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}
