// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/io"

// ConstitutiveError reports that a material update could not proceed; e.g.
// a return-mapping iteration failed to converge. Unlike an inverted
// element this is recoverable: the caller may retry the step with a
// smaller time increment.
type ConstitutiveError struct {
	Eid    int    // element id
	Ipid   int    // integration point id
	Reason string // what went wrong
}

func (o *ConstitutiveError) Error() string {
	return io.Sf("constitutive update failed @ element %d (ip %d): %s", o.Eid, o.Ipid, o.Reason)
}
