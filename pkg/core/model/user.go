// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// User models a persisted user. The ID is assigned by the persistence
// layer when a user is created and never changes afterwards. For the
// corresponding struct which maps a User to the users table, see the
// unexported gUser struct in pkg/adapter/db/postgres/usersrp/query.go.
type User struct {
	ID   uint64 `json:"id"`   // database assigned identifier
	Name string `json:"name"` // name of the user
}

// UserPatch lists the updateable keys of a User. A nil field indicates
// that its corresponding User field must be left unchanged, so a
// partial update (PATCH) request may mention only a subset of fields.
type UserPatch struct {
	Name *string `json:"name"`
}

// Apply updates fields of the `u` user which are present in the `p`
// patch and reports whether `u` was changed.
func (p UserPatch) Apply(u *User) (changed bool) {
	if p.Name != nil && *p.Name != u.Name {
		u.Name = *p.Name
		changed = true
	}
	return
}

// Replace copies the mutable fields of the `src` user into the `u`
// user, keeping the identifier of `u` intact. It implements the full
// replacement (PUT) semantics.
func (u *User) Replace(src User) {
	u.Name = src.Name
}
