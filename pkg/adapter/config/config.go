// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the crudweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so the
// use cases layer stays independent of the configuration file format.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/clean-crud/pkg/adapter/db/postgres/dirsrp"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/routes"
	"github.com/momeni/clean-crud/pkg/core/repo"
	"github.com/momeni/clean-crud/pkg/core/usecase/dirsuc"
	"github.com/momeni/clean-crud/pkg/core/usecase/schemauc"
	"github.com/momeni/clean-crud/pkg/core/usecase/usersuc"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnv names the environment variable which, when set,
// overrides the pgpass based connection URL of the normal role.
const DatabaseURLEnv = "DATABASE_URL"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Log      Log      // slog handler settings
	Metrics  Metrics  // Prometheus metrics settings
	Usecases Usecases // Configuration settings for supported use cases
}

var _ schemauc.Settings = (*Config)(nil)

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. The DATABASE_URL environment variable overrides the normal
// role connection URL. Thereafter, loaded Config will be validated and
// normalized in order to ensure that provided settings are acceptable.
func Parse(data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	c.Database.url = os.Getenv(DatabaseURLEnv)
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Log.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating log settings: %w", err)
	}
	c.Metrics.Normalize()
	if err := c.Usecases.Cars.Validate(); err != nil {
		return fmt.Errorf("validating cars settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%s.ConnectionPool(%q): %w", c.Database, r, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
// See Database.NewSchemaRepo for details.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// RenewPasswords generates new secure passwords for the given roles
// and updates them using the change function.
// See Database.RenewPasswords for details.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// NewSchemaUseCase instantiates the schema management use case which
// creates or drops the users and directories tables.
func (c *Config) NewSchemaUseCase() *schemauc.UseCase {
	return schemauc.New(c, usersrp.New(), dirsrp.New())
}

// NewUseCases instantiates all use cases which are adapted by the
// REST resources. The users and directories use cases acquire their
// connections from the p pool on demand.
func (c *Config) NewUseCases(p repo.Pool) (routes.UseCases, error) {
	cars, err := c.Usecases.Cars.NewUseCase()
	if err != nil {
		return routes.UseCases{}, fmt.Errorf("creating cars use case: %w", err)
	}
	return routes.UseCases{
		Cars:  cars,
		Users: usersuc.New(p, usersrp.New()),
		Dirs:  dirsuc.New(p, dirsrp.New()),
	}, nil
}

// NewEngine instantiates a gin-gonic engine based on the gin, log,
// and metrics settings. The returned engine has no resource routes
// yet, but it serves the /metrics if metrics are enabled.
func (c *Config) NewEngine() (*gin.Engine, error) {
	e, err := c.Gin.NewEngine(c.Log.NewLogger(os.Stderr))
	if err != nil {
		return nil, err
	}
	if m := c.Metrics.New(); m != nil {
		m.Register(e)
	}
	return e, nil
}

// String serializes c as YAML, so it may be logged. Passwords are
// kept in the pass-dir files and never appear in the output.
func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return string(b)
}
