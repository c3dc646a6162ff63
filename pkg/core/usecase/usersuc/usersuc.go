// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which supports the
// persisted users CRUD use cases, namely:
//  1. Listing all users,
//  2. Creating a user,
//  3. Fetching a user by its identifier,
//  4. Updating the updateable keys of a user (partial update),
//  5. Replacing the mutable fields of a user (full replacement),
//  6. Deleting a user,
//  7. Deleting all users.
//
// The update and replace use cases take an already fetched user, so
// the caller (e.g., a REST resource) may resolve the identifier and
// report a missing user before parsing the rest of its request.
package usersuc

import (
	"context"
	"fmt"

	"github.com/momeni/clean-crud/pkg/core/log"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/repo"
)

// UseCase represents a users use case. It holds a database connection
// pool and the users repository instance (to be guided with the pool).
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
}

// New instantiates a users use case.
func New(p repo.Pool, r repo.Users) *UseCase {
	return &UseCase{pool: p, usersrp: r}
}

// List returns all users, ordered by their identifiers.
func (users *UseCase) List(ctx context.Context) (us []model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		us, err = users.usersrp.Conn(c).All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return us, nil
}

// Create persists the u user and returns it with its assigned
// identifier. The ID field of u is ignored.
func (users *UseCase) Create(ctx context.Context, u model.User) (created *model.User, err error) {
	u.ID = 0
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		created, err = users.usersrp.Conn(c).Create(ctx, &u)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	log.Info(ctx, "user is created", log.ID("id", created.ID))
	return created, nil
}

// Fetch finds the id user. A cerr.NotFound error is returned if there
// is no such user.
func (users *UseCase) Fetch(ctx context.Context, id uint64) (u *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		u, err = users.usersrp.Conn(c).Fetch(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return u, nil
}

// Update applies the updateable keys which are present in the p patch
// to the u user and saves it. Fields which are absent from p are left
// unchanged. If p changes nothing, u is returned without any query.
func (users *UseCase) Update(ctx context.Context, u *model.User, p model.UserPatch) (*model.User, error) {
	updated := *u
	if !p.Apply(&updated) {
		return &updated, nil
	}
	return users.save(ctx, &updated)
}

// Replace copies the mutable fields of the src user into the u user
// and saves it. The identifier of u is preserved.
func (users *UseCase) Replace(ctx context.Context, u *model.User, src model.User) (*model.User, error) {
	replaced := *u
	replaced.Replace(src)
	return users.save(ctx, &replaced)
}

func (users *UseCase) save(ctx context.Context, u *model.User) (saved *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			saved, err = users.usersrp.Tx(tx).Save(ctx, u)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("saving user %d: %w", u.ID, err)
	}
	return saved, nil
}

// Delete removes the id user. A cerr.NotFound error is returned if
// there is no such user.
func (users *UseCase) Delete(ctx context.Context, id uint64) error {
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return users.usersrp.Conn(c).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	log.Info(ctx, "user is deleted", log.ID("id", id))
	return nil
}

// Clear removes all users unconditionally and returns the number of
// removed users. Clearing an empty table is not an error.
func (users *UseCase) Clear(ctx context.Context) (n int64, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		n, err = users.usersrp.Conn(c).DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clearing users: %w", err)
	}
	log.Info(ctx, "users are cleared", log.Count("count", n))
	return n, nil
}
