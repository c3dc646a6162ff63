// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a database role name.
type Role string

const (
	// AdminRole is an administrator (super user) role which may be used
	// for creation of the normal role and granting it the required
	// privileges. It is only used by the db init command.
	AdminRole Role = "admin"

	// NormalRole is a normal (unprivilged) role which is used for
	// all common operations, including creation of tables and all
	// queries of the web server.
	NormalRole Role = "crudweb"
)
