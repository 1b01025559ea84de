// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/CRC-IT/GEOSX/fem"
	"github.com/CRC-IT/GEOSX/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sirupsen/logrus"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/uniaxial", ".sim", true)
	verbose := io.ArgToBool(1, true)
	rate := io.ArgToFloat(2, -1e-4)

	// message
	if verbose {
		io.PfWhite("\nGEOSX kernels -- explicit solid mechanics update\n\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"axial strain increment per step", "rate", rate,
		))
	}

	// read run definition
	dir, fn := filepath.Split(fnamepath)
	if dir == "" {
		dir = "."
	}
	sim, err := inp.ReadSim(dir, fn)
	if err != nil {
		chk.Panic("cannot read run definition:\n%v", err)
	}

	// wire kernel
	ker, err := sim.NewKernel()
	if err != nil {
		chk.Panic("cannot wire kernel:\n%v", err)
	}
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	ker.Log = log

	// prescribed velocity field: uniaxial compression along z
	grid := &fem.Grid{Nx: sim.Grid.Nx, Ny: sim.Grid.Ny, Nz: sim.Grid.Nz}
	X := grid.Coords()
	nn := grid.Nnode()
	vel := make([]float64, 3*nn)
	vx := make([]float64, nn)
	vy := make([]float64, nn)
	vz := make([]float64, nn)
	for n := 0; n < nn; n++ {
		vz[n] = rate * X[n][2] / sim.Data.Dt
		vel[3*n+2] = vz[n]
	}

	// time loop
	for step := 1; step <= sim.Data.Nsteps; step++ {
		ker.Dofs.ZeroForces()
		switch d := ker.Dofs.(type) {
		case *fem.NodeMajorDofs:
			err = d.DisplacementUpdate(vel, sim.Data.Dt, sim.Data.Nworkers)
		case *fem.CompMajorDofs:
			err = d.DisplacementUpdate(vx, vy, vz, sim.Data.Dt, sim.Data.Nworkers)
		}
		if err != nil {
			chk.Panic("displacement update failed at step %d:\n%v", step, err)
		}
		if err = ker.Run(); err != nil {
			chk.Panic("step %d failed:\n%v", step, err)
		}
	}

	// report: mean stress at the first point and axial reaction on the top face
	topZ := float64(sim.Grid.Nz)
	reaction := 0.0
	for n := 0; n < nn; n++ {
		if X[n][2] == topZ {
			reaction += ker.Dofs.Force(n)[2]
		}
	}
	io.Pf("\n")
	io.Pf("steps           = %v\n", sim.Data.Nsteps)
	io.Pf("elements        = %v\n", grid.Nelem())
	io.Pf("mean stress     = %v\n", ker.Sto.Mean[0])
	io.Pf("top face force  = %v\n", reaction)
}
