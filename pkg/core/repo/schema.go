// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaPreparer is implemented by each table owning repository, so
// its table may be created (Prepare) or dropped (Revert). Both methods
// are idempotent, so they may be repeated after an abrupt failure.
type SchemaPreparer interface {
	Prepare(ctx context.Context) error
	Revert(ctx context.Context) error
}

// Schema represents the database level (not table level) management
// repository, e.g., for creation of roles and granting privileges.
type Schema interface {
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer lists the database level queries which must be run
// in a transaction of the admin role.
type SchemaTxQueryer interface {
	// CreateRoleIfNotExists creates the `role` login role if it does
	// not exist right now, without setting any password for it.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants all privileges on the `schema` schema to
	// the `role` role, so it may create tables in that schema.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// ChangePasswords updates the passwords of the given roles in the
	// current transaction. The roles and passwords slices must have the
	// same number of entries, so they can be used in pair.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}
