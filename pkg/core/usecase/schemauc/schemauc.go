// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc contains the database schema management UseCase.
// It supports two use cases:
//  1. Init: preparing a fresh database by creating the normal role,
//     granting it privileges, renewing the admin and normal roles
//     passwords, and creating all tables (as the normal role),
//  2. Drop: dropping all tables (as the normal role).
//
// There is no versioned migration. Tables are created when they are
// missing and dropped when they exist, so both use cases may be
// repeated safely.
package schemauc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/clean-crud/pkg/core/log"
	"github.com/momeni/clean-crud/pkg/core/repo"
)

// DefaultSchema is the database schema which is granted to the normal
// role and hosts its tables.
const DefaultSchema = "public"

// Settings represents the configuration settings which are required by
// the schema use cases. It is implemented by the adapters layer config
// package, so the use cases layer may stay independent of the actual
// configuration file format.
type Settings interface {
	// ConnectionPool creates a connections pool for the r role.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a repo.Schema for the role management.
	NewSchemaRepo() repo.Schema

	// RenewPasswords generates new passwords for roles, records them
	// in a temporary passwords file, and calls change in order to
	// update them in the database. Returned finalizer must be called
	// after the change transaction is committed, so the temporary
	// passwords file replaces the main passwords file.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context, roles []repo.Role, passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}

// UseCase represents the schema management use case.
type UseCase struct {
	settings Settings
	usersrp  repo.Users
	dirrp    repo.Directories
}

// New instantiates a schema management use case.
func New(s Settings, u repo.Users, d repo.Directories) *UseCase {
	return &UseCase{settings: s, usersrp: u, dirrp: d}
}

// Init prepares the database. The role management is performed using
// the admin role in one transaction and the tables are created using
// the normal role in a second transaction. If the first transaction
// fails, the main passwords file is left intact, so Init may be
// repeated.
func (uc *UseCase) Init(ctx context.Context) error {
	if err := uc.prepareRoles(ctx); err != nil {
		return fmt.Errorf("preparing roles: %w", err)
	}
	err := uc.normalTx(ctx, func(ctx context.Context, tx repo.Tx) error {
		if err := uc.usersrp.Tx(tx).Prepare(ctx); err != nil {
			return fmt.Errorf("preparing users table: %w", err)
		}
		if err := uc.dirrp.Tx(tx).Prepare(ctx); err != nil {
			return fmt.Errorf("preparing directories table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "database is initialized")
	return nil
}

// Drop drops all tables using the normal role in one transaction.
func (uc *UseCase) Drop(ctx context.Context) error {
	err := uc.normalTx(ctx, func(ctx context.Context, tx repo.Tx) error {
		if err := uc.dirrp.Tx(tx).Revert(ctx); err != nil {
			return fmt.Errorf("dropping directories table: %w", err)
		}
		if err := uc.usersrp.Tx(tx).Revert(ctx); err != nil {
			return fmt.Errorf("dropping users table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "database tables are dropped")
	return nil
}

func (uc *UseCase) normalTx(ctx context.Context, h repo.TxHandler) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn(ctx, "closing normal pool", log.Err("err", err))
		}
	}()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, h)
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	return nil
}

func (uc *UseCase) prepareRoles(ctx context.Context) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn(ctx, "closing admin pool", log.Err("err", err))
		}
	}()
	schemaRepo := uc.settings.NewSchemaRepo()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := schemaRepo.Tx(tx)
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, DefaultSchema, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			finalizer, err = uc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	log.Info(
		ctx, "roles are prepared",
		slog.String("role", string(repo.NormalRole)),
		slog.String("schema", DefaultSchema),
	)
	return nil
}
