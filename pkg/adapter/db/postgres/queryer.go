// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/clean-crud/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is a type constraint which allows the repository functions
// to be written once (as generic functions) and be called with either
// of a *Conn or a *Tx.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns a *gorm.DB session which operates on ctx.
	GORM(ctx context.Context) *gorm.DB
}
