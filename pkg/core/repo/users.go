// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/clean-crud/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

// UsersTxQueryer adds the schema management queries which must be run
// in a transaction, so the users and directories tables may be created
// or dropped together.
type UsersTxQueryer interface {
	UsersQueryer
	SchemaPreparer
}

// UsersQueryer lists the users queries. A missing user is reported by
// a cerr.NotFound error.
type UsersQueryer interface {
	All(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Fetch(ctx context.Context, id uint64) (*model.User, error)
	Save(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id uint64) error
	DeleteAll(ctx context.Context) (count int64, err error)
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
