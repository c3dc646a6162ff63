// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, postgres.Translate("q", nil))
	for _, tc := range []struct {
		code   string
		status int
	}{
		{postgres.UniqueViolation, http.StatusConflict},
		{postgres.NotNullViolation, http.StatusBadRequest},
		{postgres.UndefinedTable, http.StatusInternalServerError},
		{"40001", http.StatusInternalServerError},
	} {
		t.Run(tc.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tc.code, Message: "boom"}
			err := postgres.Translate("insert user", fmt.Errorf("w: %w", pgErr))
			assert.Equal(t, tc.status, cerr.StatusCode(err))
			assert.Contains(t, err.Error(), "insert user")
			var target *pgconn.PgError
			assert.True(t, errors.As(err, &target), "cause is kept")
		})
	}
	err := postgres.Translate("q", errors.New("conn reset"))
	var ce *cerr.Error
	assert.False(t, errors.As(err, &ce))
	assert.EqualError(t, err, "q: conn reset")
}
