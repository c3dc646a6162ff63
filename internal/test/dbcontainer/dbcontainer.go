// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// This packages facilitates creation of a temporary postgres:16
// podman (or docker) container and connecting to it, using a
// *postgres.Pool connection pool.
// It may be used in all integration-level test suites which require
// a real PostgreSQL DBMS server. Such suites are skipped in the short
// mode (go test -short), so they may be excluded where no container
// engine is available.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/assert"
)

// DBMSVersion is the postgres image tag of the created containers.
const DBMSVersion = "16"

// cannotConnectNow is the SQLSTATE which is reported while the
// database system is starting up.
const cannotConnectNow = "57P03"

// New creates and starts up a postgres podman container.
// The podman.service needs to be started and the DOCKER_HOST
// environment variable needs to be initialized beforehand like
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
// in order to be identified by this function properly.
// The ctx will be used during the container start up and shutdown,
// while the timeout will be considered only during the start up phase.
// The returned dfrs functions must be deferred by the caller (even if
// ok is false) in order to release the pool and the container.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration tests in short mode")
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(ctx2, DBMSVersion)
	ok = assert.NoError(t, err, "failed to set up a test database")
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	pool, ok = connect(ctx2, pg.ConnectionString(), t)
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	return
}

// connect retries until the u database accepts connections or the
// ctx deadline is reached.
func connect(ctx context.Context, u string, t *testing.T) (
	*postgres.Pool, bool,
) {
	for {
		pool, err := postgres.NewPool(ctx, u)
		if err == nil {
			return pool, true
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == cannotConnectNow {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		var netErr net.Error
		if ctx.Err() == nil && errors.As(err, &netErr) {
			time.Sleep(100 * time.Millisecond)
			continue // tolerate network errors until a timeout
		}
		assert.NoError(t, err, "cannot connect to test database")
		return nil, false
	}
}
