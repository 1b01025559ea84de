// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/CRC-IT/GEOSX/kinem"
	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Buffers holds the per-quadrature-point kinematic quantities materialized
// between the phases of a split-phase step: the rotation increment and
// strain rate feed the constitutive phase, the end-of-step inverse and
// determinant feed the integration phase
type Buffers struct {
	Nip     int
	Rot     []tsr.Ten // [nelem·nip] incremental rotations
	Dadt    []tsr.Ten // [nelem·nip] rate of deformation, integrated
	FendInv []tsr.Ten // [nelem·nip] inverse end-of-step deformation gradient
	DetFend []float64 // [nelem·nip]
	DetJ    []float64 // [nelem·nip]
}

// NewBuffers allocates phase buffers for nelem elements with nip points each
func NewBuffers(nelem, nip int) *Buffers {
	n := nelem * nip
	return &Buffers{
		Nip:     nip,
		Rot:     make([]tsr.Ten, n),
		Dadt:    make([]tsr.Ten, n),
		FendInv: make([]tsr.Ten, n),
		DetFend: make([]float64, n),
		DetJ:    make([]float64, n),
	}
}

func (o *Buffers) at(k, q int) int { return k*o.Nip + q }

// runElems splits [0,nelem) over nw workers and runs fcn on each chunk
func runElems(nelem, nw int, fcn func(start, end int) error) error {
	if nw < 1 {
		nw = 1
	}
	if nw > nelem {
		nw = nelem
	}
	if nw == 1 {
		return fcn(0, nelem)
	}
	var eg errgroup.Group
	for i := 0; i < nw; i++ {
		start := i * nelem / nw
		end := (i + 1) * nelem / nw
		eg.Go(func() error { return fcn(start, end) })
	}
	return eg.Wait()
}

// KinematicPhase runs gather and kinematics for all elements, storing the
// per-point rotation, strain rate and end-of-step geometry into buf
func (o *Kernel) KinematicPhase(buf *Buffers) error {
	return runElems(o.Topo.Nelem(), o.Nworkers, func(start, end int) error {
		w := NewWorkspace(o.Topo.Npe(), o.Grads.Nip())
		var dUdX, dUhatdX tsr.Ten
		var inc kinem.Increment
		for k := start; k < end; k++ {
			o.Topo.Nodes(k, w.nodes)
			o.Dofs.Gather(w.nodes, w.u, w.uhat)
			if err := o.Grads.ElemGrads(k, w.g, w.detJ); err != nil {
				return err
			}
			for q := 0; q < buf.Nip; q++ {
				kinem.Gradient(&dUdX, w.u, w.g[q])
				kinem.Gradient(&dUhatdX, w.uhat, w.g[q])
				if err := inc.Calc(&dUdX, &dUhatdX, o.Dt, k, q); err != nil {
					return err
				}
				i := buf.at(k, q)
				kinem.HughesWinget(&buf.Rot[i], &buf.Dadt[i], &inc.L, o.Dt)
				buf.FendInv[i] = inc.FendInv
				buf.DetFend[i] = inc.DetFend
				buf.DetJ[i] = w.detJ[q]
			}
		}
		return nil
	})
}

// ConstitutivePhase updates the stress state at every quadrature point from
// the kinematic quantities stored in buf
func (o *Kernel) ConstitutivePhase(buf *Buffers) error {
	return runElems(o.Topo.Nelem(), o.Nworkers, func(start, end int) error {
		for k := start; k < end; k++ {
			for q := 0; q < buf.Nip; q++ {
				i := buf.at(k, q)
				m := o.Map.Index(k, q)
				if err := o.Mdl.Update(&buf.Dadt[i], &buf.Rot[i], m, q, k, o.Sto); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// IntegrationPhase integrates nodal forces from the updated stresses and
// scatter-adds them into the global force array
func (o *Kernel) IntegrationPhase(buf *Buffers) error {
	return runElems(o.Topo.Nelem(), o.Nworkers, func(start, end int) error {
		w := NewWorkspace(o.Topo.Npe(), o.Grads.Nip())
		var sig tsr.Ten
		for k := start; k < end; k++ {
			o.Topo.Nodes(k, w.nodes)
			if err := o.Grads.ElemGrads(k, w.g, w.detJ); err != nil {
				return err
			}
			w.zeroForces()
			for q := 0; q < buf.Nip; q++ {
				i := buf.at(k, q)
				m := o.Map.Index(k, q)
				o.totalStress(&sig, m, q, k)
				Integrate(w.f, buf.DetJ[i], buf.DetFend[i], &buf.FendInv[i], &sig, w.g[q])
			}
			o.Dofs.AddForces(w.nodes, w.f, o.Pol)
		}
		return nil
	})
}

// RunPhased executes one step in three barrier-separated phases using buf
// to hand quadrature-point data between them. Produces the same nodal
// forces and stress states as Run; the split exists for callers that need
// a synchronization point between kinematics and the constitutive update.
func (o *Kernel) RunPhased(buf *Buffers) (err error) {
	if err = o.Check(); err != nil {
		return
	}
	if len(buf.DetJ) != o.Topo.Nelem()*o.Grads.Nip() || buf.Nip != o.Grads.Nip() {
		return cfgErr("phase buffers sized for %d points of %d each, want %d of %d",
			len(buf.DetJ), buf.Nip, o.Topo.Nelem()*o.Grads.Nip(), o.Grads.Nip())
	}
	t0 := time.Now()
	if err = o.KinematicPhase(buf); err == nil {
		if err = o.ConstitutivePhase(buf); err == nil {
			err = o.IntegrationPhase(buf)
		}
	}
	if o.Log != nil {
		entry := o.Log.WithFields(logrus.Fields{
			"elements": o.Topo.Nelem(),
			"workers":  o.Nworkers,
			"elapsed":  time.Since(t0),
		})
		if err != nil {
			entry.WithError(err).Warn("phased step failed")
		} else {
			entry.Debug("phased step done")
		}
	}
	return
}
