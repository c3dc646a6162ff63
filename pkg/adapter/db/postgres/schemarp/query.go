// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/momeni/clean-crud/pkg/core/repo"
	"github.com/momeni/clean-crud/pkg/core/scram"
)

func roleName(roleSuffix, role repo.Role) string {
	return string(role + roleSuffix)
}

func identifier(names ...string) string {
	return pgx.Identifier(names).Sanitize()
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords function may be used for setting a password.
//
// The `role` role name is suffixed by `roleSuffix` if it is not empty.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	r := roleName(roleSuffix, role)
	exists, err := roleExists(ctx, q, r)
	if err != nil {
		return fmt.Errorf("checking role %q existence: %w", r, err)
	}
	if exists {
		return nil
	}
	sql := "CREATE ROLE " + identifier(r) + " LOGIN"
	if _, err = q.Exec(ctx, sql); err != nil {
		return postgres.Translate("create role", err)
	}
	return nil
}

// roleExists reports if the `role` role (with its suffix) exists.
// The rows must be closed before the next statement may run on q.
func roleExists[Q postgres.Queryer](
	ctx context.Context, q Q, role string,
) (bool, error) {
	rows, err := q.Query(
		ctx, "SELECT COUNT(*) FROM pg_roles WHERE rolname = ?", role,
	)
	if err != nil {
		return false, postgres.Translate("query roles", err)
	}
	defer rows.Close()
	var n int64
	if rows.Next() {
		if err = rows.Scan(&n); err != nil {
			return false, fmt.Errorf("scanning roles count: %w", err)
		}
	}
	if err = rows.Err(); err != nil {
		return false, fmt.Errorf("iterating roles: %w", err)
	}
	return n > 0, nil
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema.
//
// Caller is responsible to pass a trusted schema name string, however,
// it is quoted as an identifier too.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	sql := fmt.Sprintf(
		"GRANT ALL ON SCHEMA %s TO %s",
		identifier(schema), identifier(roleName(roleSuffix, role)),
	)
	if _, err := q.Exec(ctx, sql); err != nil {
		return postgres.Translate("grant privileges", err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// The `hasher` will be used for hashing of the `passwords` before
// sending them to the DBMS, so they may not leak in plaintext (e.g.,
// in the server logs).
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return errors.New("roles and passwords must have the same length")
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", scram.DefaultIters)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		// ALTER ROLE does not accept bind parameters for the password.
		sql := fmt.Sprintf(
			"ALTER ROLE %s PASSWORD '%s'",
			identifier(roleName(roleSuffix, role)),
			strings.ReplaceAll(h, "'", "''"),
		)
		if _, err = tx.Exec(ctx, sql); err != nil {
			return postgres.Translate("change password", err)
		}
	}
	return nil
}
