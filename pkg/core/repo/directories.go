// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/clean-crud/pkg/core/model"
)

type DirectoriesConnQueryer interface {
	DirectoriesQueryer
}

type DirectoriesTxQueryer interface {
	DirectoriesQueryer
	SchemaPreparer
}

// DirectoriesQueryer lists the phone directory queries. A missing
// entry is reported by a cerr.NotFound error.
type DirectoriesQueryer interface {
	All(ctx context.Context) ([]model.Directory, error)
	Create(ctx context.Context, d *model.Directory) (*model.Directory, error)
	Fetch(ctx context.Context, id uint64) (*model.Directory, error)
	Save(ctx context.Context, d *model.Directory) (*model.Directory, error)
	Delete(ctx context.Context, id uint64) error
	DeleteAll(ctx context.Context) (count int64, err error)
}

type Directories interface {
	Conn(Conn) DirectoriesConnQueryer
	Tx(Tx) DirectoriesTxQueryer
}
