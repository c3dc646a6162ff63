// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import "github.com/momeni/clean-crud/pkg/adapter/restful/gin/metrics"

// Metrics contains the Prometheus metrics settings.
type Metrics struct {
	Enabled   *bool  // Whether to collect and serve /metrics
	Namespace string // Prefix of the metric names (default: crudweb)
}

func (m *Metrics) Normalize() {
	nil2Default(&m.Enabled, false)
	if m.Namespace == "" {
		m.Namespace = "crudweb"
	}
}

// New returns nil if metrics are disabled.
func (m Metrics) New() *metrics.Metrics {
	if !*m.Enabled {
		return nil
	}
	return metrics.New(m.Namespace)
}
