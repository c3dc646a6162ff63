// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
)

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// ID returns an Attr for a database assigned entity identifier.
func ID(key string, id uint64) slog.Attr {
	return slog.Uint64(key, id)
}

// Count returns an Attr for a number of items, e.g., deleted rows.
func Count(key string, n int64) slog.Attr {
	return slog.Int64(key, n)
}
