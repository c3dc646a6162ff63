// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dirsuc contains the phone directory UseCase. It supports the
// same CRUD use cases as the usersuc package, but for the Directory
// entries. The only updateable key of an entry is its label, so its
// phone number is kept intact after creation by both of the Update and
// Replace use cases.
package dirsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/clean-crud/pkg/core/log"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/repo"
)

// UseCase represents a phone directory use case.
type UseCase struct {
	pool  repo.Pool
	dirrp repo.Directories
}

// New instantiates a phone directory use case.
func New(p repo.Pool, r repo.Directories) *UseCase {
	return &UseCase{pool: p, dirrp: r}
}

// List returns all entries, ordered by their identifiers.
func (dirs *UseCase) List(ctx context.Context) (ds []model.Directory, err error) {
	err = dirs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ds, err = dirs.dirrp.Conn(c).All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}
	return ds, nil
}

// Create persists the d entry and returns it with its assigned
// identifier.
func (dirs *UseCase) Create(ctx context.Context, d model.Directory) (created *model.Directory, err error) {
	d.ID = 0
	err = dirs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		created, err = dirs.dirrp.Conn(c).Create(ctx, &d)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating directory entry: %w", err)
	}
	log.Info(
		ctx, "directory entry is created",
		log.ID("id", created.ID), slog.String("label", created.Label),
	)
	return created, nil
}

// Fetch finds the id entry or returns a cerr.NotFound error.
func (dirs *UseCase) Fetch(ctx context.Context, id uint64) (d *model.Directory, err error) {
	err = dirs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		d, err = dirs.dirrp.Conn(c).Fetch(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching directory entry %d: %w", id, err)
	}
	return d, nil
}

// Update applies the p patch (i.e., the label, if present) to the d
// entry and saves it. A patch which changes nothing is not saved.
func (dirs *UseCase) Update(ctx context.Context, d *model.Directory, p model.DirectoryPatch) (*model.Directory, error) {
	updated := *d
	if !p.Apply(&updated) {
		return &updated, nil
	}
	return dirs.save(ctx, &updated)
}

// Replace copies the label of src into the d entry and saves it.
// The phone number of src is ignored even though it is mandatory for
// building src, so a full replacement may not change the phone number.
func (dirs *UseCase) Replace(ctx context.Context, d *model.Directory, src model.Directory) (*model.Directory, error) {
	replaced := *d
	replaced.Replace(src)
	return dirs.save(ctx, &replaced)
}

func (dirs *UseCase) save(ctx context.Context, d *model.Directory) (saved *model.Directory, err error) {
	err = dirs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			saved, err = dirs.dirrp.Tx(tx).Save(ctx, d)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("saving directory entry %d: %w", d.ID, err)
	}
	return saved, nil
}

// Delete removes the id entry or returns a cerr.NotFound error.
func (dirs *UseCase) Delete(ctx context.Context, id uint64) error {
	err := dirs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return dirs.dirrp.Conn(c).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting directory entry %d: %w", id, err)
	}
	log.Info(ctx, "directory entry is deleted", log.ID("id", id))
	return nil
}

// Clear removes all entries and returns their count.
func (dirs *UseCase) Clear(ctx context.Context) (n int64, err error) {
	err = dirs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		n, err = dirs.dirrp.Conn(c).DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clearing directory: %w", err)
	}
	log.Info(ctx, "directory is cleared", log.Count("count", n))
	return n, nil
}
