// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction which is begun on a Conn.
// It may not be used concurrently and it may not outlive the TxHandler
// which received it. The update and replace use cases run their save
// queries in a Tx, while the db init and db drop commands create or
// drop all tables in a single Tx, so a failure leaves no half-created
// schema behind.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
