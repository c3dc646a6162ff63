// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which are required
// by the use cases layer. The use cases acquire a connection from a
// Pool, possibly begin a transaction on it, and pass that Conn or Tx
// to a repository in order to obtain a queryer which exposes the
// resource specific queries. Actual implementations live in the
// adapter layer, e.g., pkg/adapter/db/postgres.
package repo

import "context"

// ConnHandler is called with a connection which is valid only until
// the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool.
type Pool interface {
	// Conn acquires a connection, passes it to handler, and releases
	// the connection when handler returns. The handler error will be
	// returned as is.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all pooled connections.
	Close() error
}
