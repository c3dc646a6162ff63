// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"log/slog"

	"github.com/momeni/clean-crud/pkg/adapter/restful/gin"
)

// Gin contains the gin-gonic related configuration settings.
// Boolean fields are defined as pointers, so it is possible to detect
// if they are or are not initialized and fill them by their defaults.
type Gin struct {
	Logger   *bool  // Whether to register the access logger middleware
	Recovery *bool  // Whether to register the gin.Recovery() middleware
	Address  string // Listening address, like :8080
	Mode     string // One of debug, release, or test
}

// ValidateAndNormalize enables the logger and recovery middlewares,
// listens on :8080, and uses the release mode unless the settings
// ask otherwise.
func (g *Gin) ValidateAndNormalize() error {
	nil2Default(&g.Logger, true)
	nil2Default(&g.Recovery, true)
	if g.Address == "" {
		g.Address = ":8080"
	}
	switch g.Mode {
	case "":
		g.Mode = "release"
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode: %q", g.Mode)
	}
	return nil
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. The request id middleware is always registered,
// so the access logs and the use cases logs may be correlated.
func (g Gin) NewEngine(l *slog.Logger) (*gin.Engine, error) {
	if err := gin.SetMode(g.Mode); err != nil {
		return nil, err
	}
	middlewares := make([]gin.HandlerFunc, 0, 3)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(l))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...), nil
}
