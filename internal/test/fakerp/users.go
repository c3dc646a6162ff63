// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fakerp

import (
	"context"
	"fmt"

	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/repo"
)

// Users is an in-memory users repository. The same instance serves
// as its connection and transaction queryers.
type Users struct {
	t *table[model.User]
}

// NewUsers instantiates an empty (and prepared) users repository.
func NewUsers() *Users {
	return &Users{t: newTable(
		func(u *model.User) *uint64 { return &u.ID },
		func() error {
			return cerr.NotFound(fmt.Errorf("expected one row, but got 0"))
		},
	)}
}

func (users *Users) Conn(repo.Conn) repo.UsersConnQueryer {
	return users
}

func (users *Users) Tx(repo.Tx) repo.UsersTxQueryer {
	return users
}

func (users *Users) All(context.Context) ([]model.User, error) {
	return users.t.all(), nil
}

func (users *Users) Create(_ context.Context, u *model.User) (*model.User, error) {
	return users.t.create(*u), nil
}

func (users *Users) Fetch(_ context.Context, id uint64) (*model.User, error) {
	return users.t.fetch(id)
}

func (users *Users) Save(_ context.Context, u *model.User) (*model.User, error) {
	return users.t.save(*u)
}

func (users *Users) Delete(_ context.Context, id uint64) error {
	return users.t.delete(id)
}

func (users *Users) DeleteAll(context.Context) (int64, error) {
	return users.t.deleteAll(), nil
}

func (users *Users) Prepare(context.Context) error {
	users.t.setPrepared(true)
	return nil
}

func (users *Users) Revert(context.Context) error {
	users.t.setPrepared(false)
	return nil
}

// Prepared reports whether the fake users table exists.
func (users *Users) Prepared() bool {
	return users.t.isPrepared()
}
