// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interface for Salted Challenge
// Response Authentication Mechanism (SCRAM) hashers. For the
// corresponding implementation, check the pkg/adapter/hash/scram.
//
// The use cases only need to generate a hash string with the standard
// format (having a password, salt, and iteration count), so it can be
// passed to a PostgreSQL server while setting a role password. The
// server and client side SCRAM conversations are managed by the
// PostgreSQL server and its driver in the adapter layer.
package scram

// DefaultIters is the hashing iterations count which is used for the
// database role passwords, as recommended by RFC 7677.
const DefaultIters = 15000

// Hasher computes the SCRAM hash string for a password. The salt must
// contain a base64 encoding of the desired salt bytes, or be empty in
// order to use a random salt. The iters must be at least 4096.
//
// The returned string conforms to the following format:
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
type Hasher interface {
	Hash(pass, salt string, iters int) (string, error)
}
