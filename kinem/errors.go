// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinem

import "github.com/cpmech/gosl/io"

// InvalidGeometryError reports a non-positive deformation gradient
// determinant; i.e. an inverted element. This is fatal for the step: the
// stress and force values downstream of the failing point are meaningless
// and must not be computed.
type InvalidGeometryError struct {
	Eid  int     // element id
	Ipid int     // integration point id
	DetF float64 // offending determinant
}

func (o *InvalidGeometryError) Error() string {
	return io.Sf("invalid geometry: element %d (ip %d) has inverted: detF = %g ≤ 0", o.Eid, o.Ipid, o.DetF)
}
