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

// Directories is an in-memory phone directory repository. The same
// instance serves as its connection and transaction queryers.
type Directories struct {
	t *table[model.Directory]
}

// NewDirectories instantiates an empty (and prepared) repository.
func NewDirectories() *Directories {
	return &Directories{t: newTable(
		func(d *model.Directory) *uint64 { return &d.ID },
		func() error {
			return cerr.NotFound(fmt.Errorf("expected one row, but got 0"))
		},
	)}
}

func (dirs *Directories) Conn(repo.Conn) repo.DirectoriesConnQueryer {
	return dirs
}

func (dirs *Directories) Tx(repo.Tx) repo.DirectoriesTxQueryer {
	return dirs
}

func (dirs *Directories) All(context.Context) ([]model.Directory, error) {
	return dirs.t.all(), nil
}

func (dirs *Directories) Create(_ context.Context, d *model.Directory) (*model.Directory, error) {
	return dirs.t.create(*d), nil
}

func (dirs *Directories) Fetch(_ context.Context, id uint64) (*model.Directory, error) {
	return dirs.t.fetch(id)
}

func (dirs *Directories) Save(_ context.Context, d *model.Directory) (*model.Directory, error) {
	return dirs.t.save(*d)
}

func (dirs *Directories) Delete(_ context.Context, id uint64) error {
	return dirs.t.delete(id)
}

func (dirs *Directories) DeleteAll(context.Context) (int64, error) {
	return dirs.t.deleteAll(), nil
}

func (dirs *Directories) Prepare(context.Context) error {
	dirs.t.setPrepared(true)
	return nil
}

func (dirs *Directories) Revert(context.Context) error {
	dirs.t.setPrepared(false)
	return nil
}

// Prepared reports whether the fake directories table exists.
func (dirs *Directories) Prepared() bool {
	return dirs.t.isPrepared()
}
