// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/CRC-IT/GEOSX/kinem"
	"github.com/CRC-IT/GEOSX/msolid"
	"github.com/CRC-IT/GEOSX/shp"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func newLinElast(t *testing.T, K, G float64) msolid.Small {
	mdl, err := msolid.New("lin-elast")
	require.NoError(t, err)
	require.NoError(t, mdl.Init([]*dbf.P{{N: "K", V: K}, {N: "G", V: G}}))
	return mdl.(msolid.Small)
}

// precompute fills node-major and component-major derivative storage for
// all elements of a hex8 topology with reference coordinates X
func precompute(topo Topology, X [][3]float64) (*shp.NodeMajor, *shp.CompMajor) {
	nelem, npe, nip := topo.Nelem(), topo.Npe(), shp.Hex8Nip
	nm := shp.NewNodeMajor(nelem, nip, npe)
	cm := shp.NewCompMajor(nelem, nip, npe)
	nodes := make([]int, npe)
	xl := make([][3]float64, npe)
	g := make([][][3]float64, nip)
	for q := range g {
		g[q] = make([][3]float64, npe)
	}
	detJ := make([]float64, nip)
	for k := 0; k < nelem; k++ {
		topo.Nodes(k, nodes)
		for n, id := range nodes {
			xl[n] = X[id]
		}
		if err := shp.CalcElemGrads(g, detJ, xl); err != nil {
			panic(err)
		}
		nm.SetElem(k, g, detJ)
		cm.SetElem(k, g, detJ)
	}
	return nm, cm
}

func TestKernelUniaxial(t *testing.T) {

	// single unit cube under a homogeneous uniaxial strain increment in z;
	// stress state and nodal forces have closed forms
	K, G := 1000.0, 600.0
	eps := -1e-4
	grid := &Grid{Nx: 1, Ny: 1, Nz: 1}
	X := grid.Coords()
	dofs := NewNodeMajorDofs(grid.Nnode())
	for n := 0; n < grid.Nnode(); n++ {
		dofs.Uhat[3*n+2] = eps * X[n][2]
	}

	ker := &Kernel{
		Dt:    1.0,
		Topo:  grid,
		Dofs:  dofs,
		Grads: &shp.OnTheFly{X: X, Nodes: grid.Nodes},
		Map:   &msolid.PtMap{Nip: shp.Hex8Nip},
		Sto:   msolid.NewPointStore(1, shp.Hex8Nip, 0),
		Mdl:   newLinElast(t, K, G),
		Pol:   PlainAdd{},
	}
	require.NoError(t, ker.Run())

	// strain rate from the midpoint configuration
	tr := eps / (1.0 + eps/2.0)
	mean := K * tr
	devLat := -2.0 * G * tr / 3.0
	devAx := 4.0 * G * tr / 3.0
	for q := 0; q < shp.Hex8Nip; q++ {
		m := ker.Map.Index(0, q)
		require.InDelta(t, mean, ker.Sto.Mean[m], 1e-12)
		d := ker.Sto.DevAt(0, q)
		require.InDelta(t, devLat, d[0], 1e-12)
		require.InDelta(t, devLat, d[2], 1e-12)
		require.InDelta(t, devAx, d[5], 1e-12)
		require.InDelta(t, 0.0, d[1]+d[3]+d[4], 1e-15)
	}

	// nodal forces of the homogeneous state: ±detF·σ_xx/4 and ±detF·σ_yy/4
	// laterally, ±σ_zz/4 axially (the axial detF cancels against Finv)
	sigLat := mean + devLat
	sigAx := mean + devAx
	detF := 1.0 + eps
	sign := func(c float64) float64 {
		if c > 0 {
			return 1.0
		}
		return -1.0
	}
	for n := 0; n < grid.Nnode(); n++ {
		f := dofs.Force(n)
		require.InDelta(t, sign(X[n][0])*detF*sigLat/4.0, f[0], 1e-12, "node %d x", n)
		require.InDelta(t, sign(X[n][1])*detF*sigLat/4.0, f[1], 1e-12, "node %d y", n)
		require.InDelta(t, sign(X[n][2])*sigAx/4.0, f[2], 1e-12, "node %d z", n)
	}

	// internal forces of a free body always balance
	require.InDelta(t, 0.0, floats.Sum(dofs.F), 1e-13)
}

func TestKernelInvertedElement(t *testing.T) {

	// a displacement increment that inverts the element must surface an
	// InvalidGeometryError and leave state and forces untouched
	grid := &Grid{Nx: 1, Ny: 1, Nz: 1}
	X := grid.Coords()
	dofs := NewNodeMajorDofs(grid.Nnode())
	for n := 0; n < grid.Nnode(); n++ {
		dofs.Uhat[3*n+2] = -3.0 * X[n][2]
	}

	ker := &Kernel{
		Dt:    1.0,
		Topo:  grid,
		Dofs:  dofs,
		Grads: &shp.OnTheFly{X: X, Nodes: grid.Nodes},
		Map:   &msolid.PtMap{Nip: shp.Hex8Nip},
		Sto:   msolid.NewPointStore(1, shp.Hex8Nip, 0),
		Mdl:   newLinElast(t, 1000, 600),
		Pol:   PlainAdd{},
	}
	err := ker.Run()
	require.Error(t, err)
	var ige *kinem.InvalidGeometryError
	require.True(t, errors.As(err, &ige))
	require.Equal(t, 0, ige.Eid)
	require.Less(t, ige.DetF, 0.0)

	require.Zero(t, floats.Sum(ker.Sto.Mean))
	require.Zero(t, floats.Sum(ker.Sto.Dev))
	require.Zero(t, floats.Sum(dofs.F))
}

func TestKernelCheck(t *testing.T) {

	grid := &Grid{Nx: 2, Ny: 1, Nz: 1}
	X := grid.Coords()
	good := func() *Kernel {
		return &Kernel{
			Dt:    1.0,
			Topo:  grid,
			Dofs:  NewNodeMajorDofs(grid.Nnode()),
			Grads: &shp.OnTheFly{X: X, Nodes: grid.Nodes},
			Map:   &msolid.PtMap{Nip: shp.Hex8Nip},
			Sto:   msolid.NewPointStore(grid.Nelem(), shp.Hex8Nip, 0),
			Mdl:   newLinElast(t, 1000, 600),
			Pol:   PlainAdd{},
		}
	}
	require.NoError(t, good().Check())

	break1 := good()
	break1.Pol = nil
	break2 := good()
	break2.Dt = 0
	break3 := good()
	break3.Sto = msolid.NewPointStore(grid.Nelem()+1, shp.Hex8Nip, 0)
	break4 := good()
	break4.Dofs = NewNodeMajorDofs(grid.Nnode() - 1)
	break5 := good()
	break5.Map = &msolid.PtMap{Nip: shp.Hex8Nip, Idx: make([]int, 3)}

	fullIdx := func() []int {
		idx := make([]int, grid.Nelem()*shp.Hex8Nip)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	break6 := good()
	break6.Map = &msolid.PtMap{Nip: shp.Hex8Nip, Idx: fullIdx()}
	break6.Map.Idx[5] = grid.Nelem() * shp.Hex8Nip // out of range
	break7 := good()
	break7.Map = &msolid.PtMap{Nip: shp.Hex8Nip, Idx: fullIdx()}
	break7.Map.Idx[5] = break7.Map.Idx[4] // two points aliasing one slot

	// point store too small for the model's internal variables
	vm, err := msolid.New("vonmises")
	require.NoError(t, err)
	require.NoError(t, vm.Init(vm.GetPrms()))
	break8 := good()
	break8.Mdl = vm.(msolid.Small)

	for i, ker := range []*Kernel{break1, break2, break3, break4, break5, break6, break7, break8} {
		err := ker.Run()
		require.Error(t, err, "case %d", i)
		var ce *ConfigError
		require.True(t, errors.As(err, &ce), "case %d", i)
		require.NotEmpty(t, ce.Msg, "case %d", i)
	}
}

// randomDofs fills u and uhat with small random nodal values
func randomDofs(r *rand.Rand, dofs *NodeMajorDofs) {
	for i := range dofs.U {
		dofs.U[i] = 1e-4 * (2.0*r.Float64() - 1.0)
		dofs.Uhat[i] = 1e-4 * (2.0*r.Float64() - 1.0)
	}
}

func TestKernelLayoutsAgree(t *testing.T) {

	// the same field through every dof-layout × gradient-source pairing
	// must produce identical forces and states
	r := rand.New(rand.NewSource(4321))
	grid := &Grid{Nx: 2, Ny: 2, Nz: 1}
	X := grid.Coords()
	nmGrads, cmGrads := precompute(grid, X)

	ref := NewNodeMajorDofs(grid.Nnode())
	randomDofs(r, ref)
	comp := NewCompMajorDofs(grid.Nnode())
	for n := 0; n < grid.Nnode(); n++ {
		comp.Ux[n], comp.Uy[n], comp.Uz[n] = ref.U[3*n], ref.U[3*n+1], ref.U[3*n+2]
		comp.Uhx[n], comp.Uhy[n], comp.Uhz[n] = ref.Uhat[3*n], ref.Uhat[3*n+1], ref.Uhat[3*n+2]
	}

	run := func(dofs Dofs, grads shp.GradSource) (*msolid.PointStore, Dofs) {
		ker := &Kernel{
			Dt:    0.5,
			Topo:  grid,
			Dofs:  dofs,
			Grads: grads,
			Map:   &msolid.PtMap{Nip: shp.Hex8Nip},
			Sto:   msolid.NewPointStore(grid.Nelem(), shp.Hex8Nip, 0),
			Mdl:   newLinElast(t, 1000, 600),
			Pol:   PlainAdd{},
		}
		require.NoError(t, ker.Run())
		return ker.Sto, dofs
	}

	stoA, dofsA := run(ref, &shp.OnTheFly{X: X, Nodes: grid.Nodes})
	stoB, dofsB := run(comp, nmGrads)
	refC := NewNodeMajorDofs(grid.Nnode())
	copy(refC.U, ref.U)
	copy(refC.Uhat, ref.Uhat)
	stoC, dofsC := run(refC, cmGrads)

	require.Equal(t, stoA.Dev, stoB.Dev)
	require.Equal(t, stoA.Mean, stoB.Mean)
	require.Equal(t, stoA.Dev, stoC.Dev)
	require.Equal(t, stoA.Mean, stoC.Mean)
	for n := 0; n < grid.Nnode(); n++ {
		require.Equal(t, dofsA.Force(n), dofsB.Force(n), "node %d", n)
		require.Equal(t, dofsA.Force(n), dofsC.Force(n), "node %d", n)
	}
}

func TestKernelElemOrderIndependent(t *testing.T) {

	// visiting the same elements in a different order, through an explicit
	// connectivity table and an explicit constitutive map, must leave every
	// point's state in its original slot and reproduce the nodal forces
	r := rand.New(rand.NewSource(17))
	grid := &Grid{Nx: 2, Ny: 2, Nz: 1}
	X := grid.Coords()
	ref := NewNodeMajorDofs(grid.Nnode())
	randomDofs(r, ref)

	run := func(topo Topology, m *msolid.PtMap, dofs *NodeMajorDofs) *Kernel {
		ker := &Kernel{
			Dt:    0.5,
			Topo:  topo,
			Dofs:  dofs,
			Grads: &shp.OnTheFly{X: X, Nodes: topo.Nodes},
			Map:   m,
			Sto:   msolid.NewPointStore(grid.Nelem(), shp.Hex8Nip, 0),
			Mdl:   newLinElast(t, 1000, 600),
			Pol:   PlainAdd{},
		}
		require.NoError(t, ker.Run())
		return ker
	}
	base := run(grid, &msolid.PtMap{Nip: shp.Hex8Nip}, ref)

	perm := []int{2, 0, 3, 1}
	npe, nip := grid.Npe(), shp.Hex8Nip
	conn := &ElemConn{Npernode: npe, Nnodes: grid.Nnode(), Conn: make([]int, len(perm)*npe)}
	idx := make([]int, len(perm)*nip)
	for p, k := range perm {
		grid.Nodes(k, conn.Conn[p*npe:(p+1)*npe])
		for q := 0; q < nip; q++ {
			idx[p*nip+q] = k*nip + q
		}
	}
	dofs := NewNodeMajorDofs(grid.Nnode())
	copy(dofs.U, ref.U)
	copy(dofs.Uhat, ref.Uhat)
	permuted := run(conn, &msolid.PtMap{Nip: nip, Idx: idx}, dofs)

	// mean stress lives at the mapped slot: exact match
	require.Equal(t, base.Sto.Mean, permuted.Sto.Mean)

	// deviatoric state lives at (element, point): match through the order
	for p, k := range perm {
		for q := 0; q < nip; q++ {
			require.Equal(t, base.Sto.DevAt(k, q), permuted.Sto.DevAt(p, q), "elem %d point %d", k, q)
		}
	}

	// forces only differ by accumulation order at shared nodes
	for i := range ref.F {
		require.InDelta(t, ref.F[i], dofs.F[i], 1e-12, "dof %d", i)
	}
}

func TestKernelGatherScatterRoundTrip(t *testing.T) {

	// deform only the first element of a 1x3 strip: the other elements
	// gather zero increments and scatter exact zeros, so the strip must
	// reproduce the isolated single-element result node by node
	eps := 2e-4
	strip := &Grid{Nx: 3, Ny: 1, Nz: 1}
	Xs := strip.Coords()
	sdofs := NewNodeMajorDofs(strip.Nnode())
	for n := 0; n < strip.Nnode(); n++ {
		if Xs[n][0] < 0.5 {
			sdofs.Uhat[3*n] = eps
		}
	}
	sker := &Kernel{
		Dt:    1.0,
		Topo:  strip,
		Dofs:  sdofs,
		Grads: &shp.OnTheFly{X: Xs, Nodes: strip.Nodes},
		Map:   &msolid.PtMap{Nip: shp.Hex8Nip},
		Sto:   msolid.NewPointStore(strip.Nelem(), shp.Hex8Nip, 0),
		Mdl:   newLinElast(t, 1000, 600),
		Pol:   PlainAdd{},
	}
	require.NoError(t, sker.Run())

	cube := &Grid{Nx: 1, Ny: 1, Nz: 1}
	Xc := cube.Coords()
	cdofs := NewNodeMajorDofs(cube.Nnode())
	for n := 0; n < cube.Nnode(); n++ {
		if Xc[n][0] < 0.5 {
			cdofs.Uhat[3*n] = eps
		}
	}
	cker := &Kernel{
		Dt:    1.0,
		Topo:  cube,
		Dofs:  cdofs,
		Grads: &shp.OnTheFly{X: Xc, Nodes: cube.Nodes},
		Map:   &msolid.PtMap{Nip: shp.Hex8Nip},
		Sto:   msolid.NewPointStore(1, shp.Hex8Nip, 0),
		Mdl:   newLinElast(t, 1000, 600),
		Pol:   PlainAdd{},
	}
	require.NoError(t, cker.Run())

	// the first strip element matches the isolated cube node by node
	nodesS := make([]int, strip.Npe())
	nodesC := make([]int, cube.Npe())
	strip.Nodes(0, nodesS)
	cube.Nodes(0, nodesC)
	for a := range nodesS {
		fs := sdofs.Force(nodesS[a])
		fc := cdofs.Force(nodesC[a])
		for i := 0; i < 3; i++ {
			require.InDelta(t, fc[i], fs[i], 1e-15, "local node %d component %d", a, i)
		}
	}

	// the undeformed elements carry zero state and scatter nothing
	for k := 1; k < strip.Nelem(); k++ {
		for q := 0; q < shp.Hex8Nip; q++ {
			require.Zero(t, sker.Sto.Mean[sker.Map.Index(k, q)], "elem %d point %d", k, q)
			d := sker.Sto.DevAt(k, q)
			require.Zero(t, d[0]+d[1]+d[2]+d[3]+d[4]+d[5], "elem %d point %d", k, q)
		}
	}
	for n := 0; n < strip.Nnode(); n++ {
		if Xs[n][0] > 1.5 {
			f := sdofs.Force(n)
			require.Zero(t, f[0], "node %d", n)
			require.Zero(t, f[1], "node %d", n)
			require.Zero(t, f[2], "node %d", n)
		}
	}
}

func TestKernelWorkersAgree(t *testing.T) {

	// every node of a 2×2×2 grid is shared by up to 8 elements, the worst
	// case for concurrent accumulation; parallel runs must match the serial
	// reference within accumulation-order roundoff, trial after trial
	r := rand.New(rand.NewSource(99))
	grid := &Grid{Nx: 2, Ny: 2, Nz: 2}
	X := grid.Coords()
	ref := NewNodeMajorDofs(grid.Nnode())
	randomDofs(r, ref)

	newKernel := func(dofs *NodeMajorDofs, pol AddPolicy, nw int) *Kernel {
		return &Kernel{
			Dt:       1.0,
			Topo:     grid,
			Dofs:     dofs,
			Grads:    &shp.OnTheFly{X: X, Nodes: grid.Nodes},
			Map:      &msolid.PtMap{Nip: shp.Hex8Nip},
			Sto:      msolid.NewPointStore(grid.Nelem(), shp.Hex8Nip, 0),
			Mdl:      newLinElast(t, 1000, 600),
			Pol:      pol,
			Nworkers: nw,
		}
	}

	serial := newKernel(ref, PlainAdd{}, 1)
	require.NoError(t, serial.Run())

	for trial := 0; trial < 5; trial++ {
		dofs := NewNodeMajorDofs(grid.Nnode())
		copy(dofs.U, ref.U)
		copy(dofs.Uhat, ref.Uhat)
		par := newKernel(dofs, AtomicAdd{}, 4)
		require.NoError(t, par.Run())

		// per-point state is owned by one element: exact match
		require.Equal(t, serial.Sto.Dev, par.Sto.Dev, "trial %d", trial)
		require.Equal(t, serial.Sto.Mean, par.Sto.Mean, "trial %d", trial)

		// forces only differ by accumulation order
		for i := range ref.F {
			require.InDelta(t, ref.F[i], dofs.F[i], 1e-12, "trial %d dof %d", trial, i)
		}
	}
}
