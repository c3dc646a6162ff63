// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp provides a reification of the repo.Users interface
// using GORM, storing users in the users table.
package usersrp

import (
	"context"

	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic.
func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) All(ctx context.Context) ([]model.User, error) {
	return All(ctx, cq.Conn)
}

func (cq connQueryer) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return Create(ctx, cq.Conn, u)
}

func (cq connQueryer) Fetch(ctx context.Context, id uint64) (*model.User, error) {
	return Fetch(ctx, cq.Conn, id)
}

func (cq connQueryer) Save(ctx context.Context, u *model.User) (*model.User, error) {
	return Save(ctx, cq.Conn, u)
}

func (cq connQueryer) Delete(ctx context.Context, id uint64) error {
	return Delete(ctx, cq.Conn, id)
}

func (cq connQueryer) DeleteAll(ctx context.Context) (int64, error) {
	return DeleteAll(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic.
func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) All(ctx context.Context) ([]model.User, error) {
	return All(ctx, tq.Tx)
}

func (tq txQueryer) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return Create(ctx, tq.Tx, u)
}

func (tq txQueryer) Fetch(ctx context.Context, id uint64) (*model.User, error) {
	return Fetch(ctx, tq.Tx, id)
}

func (tq txQueryer) Save(ctx context.Context, u *model.User) (*model.User, error) {
	return Save(ctx, tq.Tx, u)
}

func (tq txQueryer) Delete(ctx context.Context, id uint64) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) DeleteAll(ctx context.Context) (int64, error) {
	return DeleteAll(ctx, tq.Tx)
}

func (tq txQueryer) Prepare(ctx context.Context) error {
	return Prepare(ctx, tq.Tx)
}

func (tq txQueryer) Revert(ctx context.Context) error {
	return Revert(ctx, tq.Tx)
}
