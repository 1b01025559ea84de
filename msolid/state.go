// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// PointStore holds the persistent stress state of all quadrature points of
// one element set. Per point: 6 deviatoric stress components in
// lower-triangle order (00,10,11,20,21,22), one mean stress scalar, and
// optional model-specific internal variables. The store is partitioned by
// point: concurrent element tasks never touch the same entries.
//
// The mean stress and internal variables are indexed by the
// constitutive-map index m; the deviatoric components by (element, ip).
// With the default map (m = k·nip + q) the two indexings coincide.
type PointStore struct {
	Nelem int       // number of elements
	Nip   int       // integration points per element
	Dev   []float64 // [nelem·nip·6] deviatoric stress components
	Mean  []float64 // [nelem·nip] mean stress, indexed by map index
	Alp   []float64 // [nelem·nip·nalp] internal variables, indexed by map index
	Nalp  int       // number of internal variables per point
}

// NewPointStore allocates the state of nelem×nip points with nalp internal
// variables each
func NewPointStore(nelem, nip, nalp int) *PointStore {
	return &PointStore{
		Nelem: nelem,
		Nip:   nip,
		Dev:   make([]float64, nelem*nip*6),
		Mean:  make([]float64, nelem*nip),
		Alp:   make([]float64, nelem*nip*nalp),
		Nalp:  nalp,
	}
}

// DevAt returns the 6 deviatoric components of point (k,q)
func (o *PointStore) DevAt(k, q int) []float64 {
	i := (k*o.Nip + q) * 6
	return o.Dev[i : i+6]
}

// AlpAt returns the internal variables of map index m
func (o *PointStore) AlpAt(m int) []float64 {
	return o.Alp[m*o.Nalp : (m+1)*o.Nalp]
}

// GetCopy returns a deep copy of the store; e.g. for backup/restore around
// a trial step
func (o *PointStore) GetCopy() *PointStore {
	p := NewPointStore(o.Nelem, o.Nip, o.Nalp)
	copy(p.Dev, o.Dev)
	copy(p.Mean, o.Mean)
	copy(p.Alp, o.Alp)
	return p
}

// Set copies the contents of another store into this one.
// Both must have been allocated with the same sizes.
func (o *PointStore) Set(other *PointStore) {
	copy(o.Dev, other.Dev)
	copy(o.Mean, other.Mean)
	copy(o.Alp, other.Alp)
}

// PtMap maps (element, integration point) to the material-instance index m
// used for state lookup. Many points may share material parameters, but m
// is unique per point so state never aliases. A nil Idx means the default
// linear map m = k·nip + q.
type PtMap struct {
	Nip int   // integration points per element
	Idx []int // explicit map [nelem·nip]; nil => default
}

// Index returns the map index of point (k,q)
func (o *PtMap) Index(k, q int) int {
	if o.Idx == nil {
		return k*o.Nip + q
	}
	return o.Idx[k*o.Nip+q]
}
