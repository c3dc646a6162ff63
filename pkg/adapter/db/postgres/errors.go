// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/clean-crud/pkg/core/cerr"
)

// PostgreSQL error codes which are translated by the Translate
// function. See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	UniqueViolation  = "23505"
	NotNullViolation = "23502"
	UndefinedTable   = "42P01"
)

// Translate wraps err with a cerr.Error if it carries a *pgconn.PgError
// with a known code, so the REST layer may report a proper status code.
// A nil err is returned as nil and other errors are wrapped with the
// given query name for more context.
func Translate(query string, err error) error {
	if err == nil {
		return nil
	}
	err = fmt.Errorf("%s: %w", query, err)
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case UniqueViolation:
		return cerr.Conflict(err)
	case NotNullViolation:
		return cerr.BadRequest(err)
	case UndefinedTable:
		return cerr.Internal(
			fmt.Errorf("%w (is the database initialized?)", err),
		)
	}
	return err
}
