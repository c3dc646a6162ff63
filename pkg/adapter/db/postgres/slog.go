// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/momeni/clean-crud/pkg/core/log"
)

// slogWriter reifies the gorm/logger.Writer interface, forwarding the
// GORM formatted messages to the default slog logger.
type slogWriter struct{}

// Printf is called by GORM logger for slow queries, errors, and other
// messages. Its first argument may start with a file:line prefix and
// contain newlines, so the message is flattened before being logged.
func (slogWriter) Printf(format string, args ...any) {
	msg := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " ")
	log.Warn(context.Background(), "gorm", slog.String("msg", msg))
}
