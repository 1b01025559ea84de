// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// ConfigError reports a topology, sizing or quadrature-count mismatch
// between the harness and its data sources. This is an integration error
// detected at setup; the element loop never starts when one is raised.
type ConfigError struct {
	Msg string
}

func (o *ConfigError) Error() string {
	return "configuration mismatch: " + o.Msg
}

func cfgErr(msg string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: io.Sf(msg, args...)}
}
