// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements rate-form constitutive models for solids and
// the per-quadrature-point stress state they update
package msolid

import (
	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid material models
type Model interface {
	Init(prms dbf.Params) error // initialises model with named parameters
	GetPrms() dbf.Params        // gets (an example of) parameters
}

// Small defines the small-strain rate-update capability consumed by the
// kernels. Update mutates the stress state of point (k,q) in place:
//  dadt -- rate of deformation × dt, in the unrotated frame
//  rot  -- incremental rotation carrying the updated stress back into the
//          fixed frame
//  m    -- constitutive-map index of the point (state lookup)
// Any model satisfying this signature may be swapped into a kernel
// without the kernel knowing its internals.
type Small interface {
	Model
	Update(dadt, rot *tsr.Ten, m, q, k int, sto *PointStore) error
}

// New returns a new model from the database of allocators
func New(name string) (Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in msolid database", name)
	}
	return allocator(), nil
}

// NIntVars returns the number of internal (secondary) variables needed by
// a named model, for sizing the point store
func NIntVars(mdl Model) int {
	if e, ok := mdl.(interface{ NIntVars() int }); ok {
		return e.NIntVars()
	}
	return 0
}

// allocators holds all available models; modelname => allocator
var allocators = map[string]func() Model{}

// Calc_K_from_Enu returns the bulk modulus for given Young's modulus and
// Poisson's coefficient
func Calc_K_from_Enu(E, ν float64) float64 {
	return E / (3.0 * (1.0 - 2.0*ν))
}

// Calc_G_from_Enu returns the shear modulus for given Young's modulus and
// Poisson's coefficient
func Calc_G_from_Enu(E, ν float64) float64 {
	return E / (2.0 * (1.0 + ν))
}
