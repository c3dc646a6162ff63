// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package miscrs realizes the stateless diagnostic endpoints which need
// no use case, such as /hello and /info.
package miscrs

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// Register adds the following REST APIs to r:
//  1. GET /hello responding with {"hello":"world"},
//  2. GET /plaintext responding with "Hello, world!" as text/plain,
//  3. GET /info and /description responding with a plain text
//     description of the received request.
func Register(r gin.IRouter) {
	r.GET("hello", Hello)
	r.GET("plaintext", Plaintext)
	r.GET("info", Info)
	r.GET("description", Info)
}

func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": "world"})
}

func Plaintext(c *gin.Context) {
	c.String(http.StatusOK, "Hello, world!")
}

func Info(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "reading body: %v", err)
		return
	}
	c.String(http.StatusOK, "%s", Describe(c.Request, body))
}

// Describe formats the request line, remote address, headers (sorted
// by their canonical names), and body of r as a human-readable text.
func Describe(r *http.Request, body []byte) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s %s %s\n", r.Method, r.URL.RequestURI(), r.Proto)
	fmt.Fprintf(b, "Remote-Address: %s\n", r.RemoteAddr)
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "%s: %s\n", name, strings.Join(r.Header[name], ", "))
	}
	b.WriteString("\n")
	b.Write(body)
	return b.String()
}
