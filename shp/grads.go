// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/chk"

// GradSource provides, element by element, the shape function derivatives
// and reference Jacobian determinants consumed by the kernels. The three
// implementations are interchangeable and selected at configuration time:
// precomputed node-major storage, precomputed component-major storage, and
// on-the-fly evaluation from reference nodal coordinates.
type GradSource interface {
	Nip() int // integration points per element
	Npe() int // nodes per element

	// ElemGrads fills g[q][n] with ∇N[n] at ip q and detJ[q] with the
	// reference Jacobian determinant, for element k
	ElemGrads(k int, g [][][3]float64, detJ []float64) error
}

// NodeMajor stores precomputed derivatives with the node and dimension
// indices fastest: G[((k·nip + q)·npe + n)·3 + i]
type NodeMajor struct {
	nelem, nip, npe int
	G               []float64
	DetJ            []float64
}

// NewNodeMajor allocates storage for nelem elements
func NewNodeMajor(nelem, nip, npe int) *NodeMajor {
	return &NodeMajor{
		nelem: nelem, nip: nip, npe: npe,
		G:    make([]float64, nelem*nip*npe*3),
		DetJ: make([]float64, nelem*nip),
	}
}

// SetElem stores the derivatives of one element
func (o *NodeMajor) SetElem(k int, g [][][3]float64, detJ []float64) {
	for q := 0; q < o.nip; q++ {
		base := ((k*o.nip + q) * o.npe) * 3
		for n := 0; n < o.npe; n++ {
			o.G[base+n*3] = g[q][n][0]
			o.G[base+n*3+1] = g[q][n][1]
			o.G[base+n*3+2] = g[q][n][2]
		}
		o.DetJ[k*o.nip+q] = detJ[q]
	}
}

func (o *NodeMajor) Nip() int { return o.nip }
func (o *NodeMajor) Npe() int { return o.npe }

func (o *NodeMajor) ElemGrads(k int, g [][][3]float64, detJ []float64) error {
	if k < 0 || k >= o.nelem {
		return chk.Err("element index %d out of range [0,%d)", k, o.nelem)
	}
	for q := 0; q < o.nip; q++ {
		base := ((k*o.nip + q) * o.npe) * 3
		for n := 0; n < o.npe; n++ {
			g[q][n][0] = o.G[base+n*3]
			g[q][n][1] = o.G[base+n*3+1]
			g[q][n][2] = o.G[base+n*3+2]
		}
		detJ[q] = o.DetJ[k*o.nip+q]
	}
	return nil
}

// CompMajor stores precomputed derivatives with one contiguous array per
// Cartesian component: Gx[(k·nip + q)·npe + n], and likewise Gy, Gz
type CompMajor struct {
	nelem, nip, npe int
	Gx, Gy, Gz      []float64
	DetJ            []float64
}

// NewCompMajor allocates storage for nelem elements
func NewCompMajor(nelem, nip, npe int) *CompMajor {
	n := nelem * nip * npe
	return &CompMajor{
		nelem: nelem, nip: nip, npe: npe,
		Gx: make([]float64, n), Gy: make([]float64, n), Gz: make([]float64, n),
		DetJ: make([]float64, nelem*nip),
	}
}

// SetElem stores the derivatives of one element
func (o *CompMajor) SetElem(k int, g [][][3]float64, detJ []float64) {
	for q := 0; q < o.nip; q++ {
		base := (k*o.nip + q) * o.npe
		for n := 0; n < o.npe; n++ {
			o.Gx[base+n] = g[q][n][0]
			o.Gy[base+n] = g[q][n][1]
			o.Gz[base+n] = g[q][n][2]
		}
		o.DetJ[k*o.nip+q] = detJ[q]
	}
}

func (o *CompMajor) Nip() int { return o.nip }
func (o *CompMajor) Npe() int { return o.npe }

func (o *CompMajor) ElemGrads(k int, g [][][3]float64, detJ []float64) error {
	if k < 0 || k >= o.nelem {
		return chk.Err("element index %d out of range [0,%d)", k, o.nelem)
	}
	for q := 0; q < o.nip; q++ {
		base := (k*o.nip + q) * o.npe
		for n := 0; n < o.npe; n++ {
			g[q][n][0] = o.Gx[base+n]
			g[q][n][1] = o.Gy[base+n]
			g[q][n][2] = o.Gz[base+n]
		}
		detJ[q] = o.DetJ[k*o.nip+q]
	}
	return nil
}

// OnTheFly evaluates hex8 derivatives from reference nodal coordinates at
// every call, trading flops for memory
type OnTheFly struct {
	X     [][3]float64             // reference coordinates of all nodes
	Nodes func(k int, nodes []int) // element connectivity accessor
}

func (o *OnTheFly) Nip() int { return Hex8Nip }
func (o *OnTheFly) Npe() int { return Hex8Nverts }

func (o *OnTheFly) ElemGrads(k int, g [][][3]float64, detJ []float64) error {
	var nodes [Hex8Nverts]int
	var xl [Hex8Nverts][3]float64
	o.Nodes(k, nodes[:])
	for n := 0; n < Hex8Nverts; n++ {
		xl[n] = o.X[nodes[n]]
	}
	return CalcElemGrads(g, detJ, xl[:])
}
