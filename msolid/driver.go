// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Driver exercises a single material point through a sequence of strain
// increments, for testing models independently of any mesh
type Driver struct {

	// input
	model Small       // model being driven
	sto   *PointStore // single-point state

	// results
	Mean []float64   // mean stress after each increment
	Dev  [][]float64 // deviatoric components after each increment
}

// Init allocates the driver for a named model with given parameters
func (o *Driver) Init(modelname string, prms dbf.Params) (err error) {
	mdl, err := New(modelname)
	if err != nil {
		return
	}
	small, ok := mdl.(Small)
	if !ok {
		return chk.Err("model %q does not implement the small-strain rate update", modelname)
	}
	if err = small.Init(prms); err != nil {
		return
	}
	o.model = small
	o.sto = NewPointStore(1, 1, NIntVars(mdl))
	return
}

// Model returns the model being driven
func (o *Driver) Model() Small { return o.model }

// State returns the single-point store
func (o *Driver) State() *PointStore { return o.sto }

// Run applies n identical strain increments dadt (with identity rotation)
// and records the stress path
func (o *Driver) Run(dadt *tsr.Ten, n int) (err error) {
	rot := tsr.It
	o.Mean = make([]float64, n)
	o.Dev = make([][]float64, n)
	for i := 0; i < n; i++ {
		if err = o.model.Update(dadt, &rot, 0, 0, 0, o.sto); err != nil {
			return
		}
		o.Mean[i] = o.sto.Mean[0]
		o.Dev[i] = make([]float64, 6)
		copy(o.Dev[i], o.sto.DevAt(0, 0))
	}
	return
}
