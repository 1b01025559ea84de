// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Dofs provides access to the global nodal degree-of-freedom arrays:
// displacement u, incremental displacement uhat (both read-only to the
// kernels) and the accumulated force/acceleration array (mutated only
// through an AddPolicy). The two implementations store the same data in
// different memory layouts and are selected at configuration time.
type Dofs interface {
	Nnode() int

	// Gather copies u and uhat of the listed nodes into element-local
	// buffers; a pure read
	Gather(nodes []int, u, uhat [][3]float64)

	// AddForces scatter-adds element-local forces into the global force
	// array through the accumulate policy
	AddForces(nodes []int, f [][3]float64, pol AddPolicy)

	// Force reads the accumulated force of one node
	Force(n int) [3]float64

	// ZeroForces resets the force array before a new step
	ZeroForces()
}

// NodeMajorDofs stores nodal values interleaved per node:
//  u = [x0, y0, z0, x1, y1, z1, ...]
type NodeMajorDofs struct {
	U    []float64 // [3n] displacements
	Uhat []float64 // [3n] incremental displacements
	F    []float64 // [3n] accumulated forces
}

// NewNodeMajorDofs allocates arrays for nn nodes
func NewNodeMajorDofs(nn int) *NodeMajorDofs {
	return &NodeMajorDofs{
		U:    make([]float64, 3*nn),
		Uhat: make([]float64, 3*nn),
		F:    make([]float64, 3*nn),
	}
}

func (o *NodeMajorDofs) Nnode() int { return len(o.U) / 3 }

func (o *NodeMajorDofs) Gather(nodes []int, u, uhat [][3]float64) {
	for a, n := range nodes {
		u[a][0] = o.U[3*n]
		u[a][1] = o.U[3*n+1]
		u[a][2] = o.U[3*n+2]
		uhat[a][0] = o.Uhat[3*n]
		uhat[a][1] = o.Uhat[3*n+1]
		uhat[a][2] = o.Uhat[3*n+2]
	}
}

func (o *NodeMajorDofs) AddForces(nodes []int, f [][3]float64, pol AddPolicy) {
	for a, n := range nodes {
		pol.Add(&o.F[3*n], f[a][0])
		pol.Add(&o.F[3*n+1], f[a][1])
		pol.Add(&o.F[3*n+2], f[a][2])
	}
}

func (o *NodeMajorDofs) Force(n int) [3]float64 {
	return [3]float64{o.F[3*n], o.F[3*n+1], o.F[3*n+2]}
}

func (o *NodeMajorDofs) ZeroForces() {
	for i := range o.F {
		o.F[i] = 0
	}
}

// CompMajorDofs stores one contiguous array per Cartesian component:
//  ux = [x0, x1, x2, ...]   uy = [y0, y1, ...]   uz = [z0, z1, ...]
type CompMajorDofs struct {
	Ux, Uy, Uz    []float64 // displacements
	Uhx, Uhy, Uhz []float64 // incremental displacements
	Fx, Fy, Fz    []float64 // accumulated forces
}

// NewCompMajorDofs allocates arrays for nn nodes
func NewCompMajorDofs(nn int) *CompMajorDofs {
	return &CompMajorDofs{
		Ux: make([]float64, nn), Uy: make([]float64, nn), Uz: make([]float64, nn),
		Uhx: make([]float64, nn), Uhy: make([]float64, nn), Uhz: make([]float64, nn),
		Fx: make([]float64, nn), Fy: make([]float64, nn), Fz: make([]float64, nn),
	}
}

func (o *CompMajorDofs) Nnode() int { return len(o.Ux) }

func (o *CompMajorDofs) Gather(nodes []int, u, uhat [][3]float64) {
	for a, n := range nodes {
		u[a][0] = o.Ux[n]
		u[a][1] = o.Uy[n]
		u[a][2] = o.Uz[n]
		uhat[a][0] = o.Uhx[n]
		uhat[a][1] = o.Uhy[n]
		uhat[a][2] = o.Uhz[n]
	}
}

func (o *CompMajorDofs) AddForces(nodes []int, f [][3]float64, pol AddPolicy) {
	for a, n := range nodes {
		pol.Add(&o.Fx[n], f[a][0])
		pol.Add(&o.Fy[n], f[a][1])
		pol.Add(&o.Fz[n], f[a][2])
	}
}

func (o *CompMajorDofs) Force(n int) [3]float64 {
	return [3]float64{o.Fx[n], o.Fy[n], o.Fz[n]}
}

func (o *CompMajorDofs) ZeroForces() {
	for i := range o.Fx {
		o.Fx[i] = 0
		o.Fy[i] = 0
		o.Fz[i] = 0
	}
}
