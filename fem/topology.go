// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the element-loop harness of the explicit solid
// mechanics update: element topologies, nodal degree-of-freedom layouts,
// concurrency-safe force accumulation, and the monolithic and split-phase
// kernels tying kinematics, constitutive updates and force integration
// together
package fem

import "github.com/CRC-IT/GEOSX/shp"

// Topology maps elements to their nodes. Either stored explicitly
// (unstructured meshes) or derived on the fly from a structured grid.
// The node ordering must be consistent with the shape function numbering.
type Topology interface {
	Nelem() int              // number of elements
	Npe() int                // nodes per element
	Nnode() int              // number of nodes
	Nodes(k int, nodes []int) // fills the node list of element k
}

// ElemConn is an explicitly stored element-to-node table
type ElemConn struct {
	Npernode int   // nodes per element
	Nnodes   int   // number of nodes
	Conn     []int // [nelem·npe] node ids, element-major
}

func (o *ElemConn) Nelem() int { return len(o.Conn) / o.Npernode }
func (o *ElemConn) Npe() int   { return o.Npernode }
func (o *ElemConn) Nnode() int { return o.Nnodes }

func (o *ElemConn) Nodes(k int, nodes []int) {
	copy(nodes, o.Conn[k*o.Npernode:(k+1)*o.Npernode])
}

// Grid derives hex8 connectivity from a structured (i,j,k) grid of
// nx×ny×nz elements without storing it
type Grid struct {
	Nx, Ny, Nz int
}

func (o *Grid) Nelem() int { return o.Nx * o.Ny * o.Nz }
func (o *Grid) Npe() int   { return shp.Hex8Nverts }
func (o *Grid) Nnode() int { return (o.Nx + 1) * (o.Ny + 1) * (o.Nz + 1) }

func (o *Grid) Nodes(k int, nodes []int) {
	i := k % o.Nx
	j := (k / o.Nx) % o.Ny
	l := k / (o.Nx * o.Ny)
	npx := o.Nx + 1        // nodes per row
	npxy := npx * (o.Ny + 1) // nodes per layer
	n0 := i + j*npx + l*npxy
	nodes[0] = n0
	nodes[1] = n0 + 1
	nodes[2] = n0 + 1 + npx
	nodes[3] = n0 + npx
	nodes[4] = n0 + npxy
	nodes[5] = n0 + 1 + npxy
	nodes[6] = n0 + 1 + npx + npxy
	nodes[7] = n0 + npx + npxy
}

// Coords returns the reference coordinates of all grid nodes for unit
// cells; e.g. to feed the on-the-fly gradient source
func (o *Grid) Coords() [][3]float64 {
	X := make([][3]float64, o.Nnode())
	id := 0
	for l := 0; l <= o.Nz; l++ {
		for j := 0; j <= o.Ny; j++ {
			for i := 0; i <= o.Nx; i++ {
				X[id] = [3]float64{float64(i), float64(j), float64(l)}
				id++
			}
		}
	}
	return X
}
