// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the run definition read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/CRC-IT/GEOSX/fem"
	"github.com/CRC-IT/GEOSX/msolid"
	"github.com/CRC-IT/GEOSX/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global run data
type Data struct {
	Desc     string  `json:"desc"`     // description of run
	Dt       float64 `json:"dt"`       // time step size
	Nsteps   int     `json:"nsteps"`   // number of steps; 0 => 1
	Nworkers int     `json:"nworkers"` // parallel workers; 0 => 1
	Layout   string  `json:"layout"`   // dof layout: "node-major" or "comp-major"; "" => node-major
	Grads    string  `json:"grads"`    // derivative storage: "node-major", "comp-major" or "on-the-fly"; "" => on-the-fly
	Accum    string  `json:"accum"`    // accumulate policy: "atomic", "locked" or "plain"; "" => atomic
}

// GridData holds structured grid dimensions
type GridData struct {
	Nx int `json:"nx"` // elements along x
	Ny int `json:"ny"` // elements along y
	Nz int `json:"nz"` // elements along z
}

// MatData holds the material selection and parameters
type MatData struct {
	Model string     `json:"model"` // model name in msolid database
	Prms  dbf.Params `json:"prms"`  // model parameters
}

// Simulation holds all run data
type Simulation struct {

	// input
	Data Data     `json:"data"` // global run data
	Grid GridData `json:"grid"` // structured grid dimensions
	Mat  MatData  `json:"mat"`  // material data

	// derived
	Key string // run key; e.g. mysim01.sim => mysim01
}

// SetDefault fills in default selections for empty fields
func (o *Simulation) SetDefault() {
	o.Data.Nsteps = utl.Imax(1, o.Data.Nsteps)
	o.Data.Nworkers = utl.Imax(1, o.Data.Nworkers)
	if o.Data.Layout == "" {
		o.Data.Layout = "node-major"
	}
	if o.Data.Grads == "" {
		o.Data.Grads = "on-the-fly"
	}
	if o.Data.Accum == "" {
		o.Data.Accum = "atomic"
	}
}

// Validate checks the run definition for consistency
func (o *Simulation) Validate() error {
	if o.Data.Dt <= 0 {
		return chk.Err("time step must be positive: dt = %g", o.Data.Dt)
	}
	if o.Grid.Nx < 1 || o.Grid.Ny < 1 || o.Grid.Nz < 1 {
		return chk.Err("grid dimensions must be positive: %d×%d×%d", o.Grid.Nx, o.Grid.Ny, o.Grid.Nz)
	}
	switch o.Data.Layout {
	case "node-major", "comp-major":
	default:
		return chk.Err("unknown dof layout %q", o.Data.Layout)
	}
	switch o.Data.Grads {
	case "node-major", "comp-major", "on-the-fly":
	default:
		return chk.Err("unknown derivative storage %q", o.Data.Grads)
	}
	switch o.Data.Accum {
	case "atomic", "locked":
	case "plain":
		if o.Data.Nworkers > 1 {
			return chk.Err("plain accumulation cannot run with %d workers", o.Data.Nworkers)
		}
	default:
		return chk.Err("unknown accumulate policy %q", o.Data.Accum)
	}
	if o.Mat.Model == "" {
		return chk.Err("material model name must be given")
	}
	return nil
}

// ReadSim reads a run definition from a .sim JSON file
func ReadSim(dir, fn string) (*Simulation, error) {
	path := filepath.Join(dir, fn)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read run file %q: %v", path, err)
	}
	var o Simulation
	if err = json.Unmarshal(b, &o); err != nil {
		return nil, chk.Err("cannot unmarshal run file %q: %v", path, err)
	}
	o.SetDefault()
	o.Key = io.FnKey(fn)
	if err = o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// NewKernel wires topology, dof layout, derivative storage, material and
// accumulate policy into a ready-to-run kernel
func (o *Simulation) NewKernel() (*fem.Kernel, error) {

	grid := &fem.Grid{Nx: o.Grid.Nx, Ny: o.Grid.Ny, Nz: o.Grid.Nz}
	X := grid.Coords()

	var dofs fem.Dofs
	switch o.Data.Layout {
	case "node-major":
		dofs = fem.NewNodeMajorDofs(grid.Nnode())
	case "comp-major":
		dofs = fem.NewCompMajorDofs(grid.Nnode())
	}

	grads, err := o.newGrads(grid, X)
	if err != nil {
		return nil, err
	}

	var pol fem.AddPolicy
	switch o.Data.Accum {
	case "atomic":
		pol = fem.AtomicAdd{}
	case "locked":
		pol = fem.NewLockedAdd()
	case "plain":
		pol = fem.PlainAdd{}
	}

	mdl, err := msolid.New(o.Mat.Model)
	if err != nil {
		return nil, err
	}
	if err = mdl.Init(o.Mat.Prms); err != nil {
		return nil, err
	}
	small, ok := mdl.(msolid.Small)
	if !ok {
		return nil, chk.Err("model %q does not implement the rate update", o.Mat.Model)
	}

	return &fem.Kernel{
		Dt:       o.Data.Dt,
		Topo:     grid,
		Dofs:     dofs,
		Grads:    grads,
		Map:      &msolid.PtMap{Nip: shp.Hex8Nip},
		Sto:      msolid.NewPointStore(grid.Nelem(), shp.Hex8Nip, msolid.NIntVars(mdl)),
		Mdl:      small,
		Pol:      pol,
		Nworkers: o.Data.Nworkers,
	}, nil
}

// newGrads builds the selected derivative storage, precomputing all element
// derivatives for the stored variants
func (o *Simulation) newGrads(grid *fem.Grid, X [][3]float64) (shp.GradSource, error) {
	if o.Data.Grads == "on-the-fly" {
		return &shp.OnTheFly{X: X, Nodes: grid.Nodes}, nil
	}

	nelem, npe, nip := grid.Nelem(), grid.Npe(), shp.Hex8Nip
	nodes := make([]int, npe)
	xl := make([][3]float64, npe)
	g := make([][][3]float64, nip)
	for q := range g {
		g[q] = make([][3]float64, npe)
	}
	detJ := make([]float64, nip)

	var store interface {
		shp.GradSource
		SetElem(k int, g [][][3]float64, detJ []float64)
	}
	switch o.Data.Grads {
	case "node-major":
		store = shp.NewNodeMajor(nelem, nip, npe)
	case "comp-major":
		store = shp.NewCompMajor(nelem, nip, npe)
	default:
		return nil, chk.Err("unknown derivative storage %q", o.Data.Grads)
	}
	for k := 0; k < nelem; k++ {
		grid.Nodes(k, nodes)
		for n, id := range nodes {
			xl[n] = X[id]
		}
		if err := shp.CalcElemGrads(g, detJ, xl); err != nil {
			return nil, err
		}
		store.SetElem(k, g, detJ)
	}
	return store, nil
}
