// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/CRC-IT/GEOSX/kinem"
	"github.com/CRC-IT/GEOSX/msolid"
	"github.com/CRC-IT/GEOSX/shp"
	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Kernel drives the explicit solid mechanics update over one element set:
// gather nodal data, per quadrature point run kinematics → Hughes-Winget →
// constitutive update → force integration, then scatter-add element forces
// into the global array through the accumulate policy
type Kernel struct {
	Dt       float64        // time step size
	Topo     Topology       // element-to-node topology
	Dofs     Dofs           // nodal degree-of-freedom arrays
	Grads    shp.GradSource // shape function derivatives
	Map      *msolid.PtMap  // constitutive map
	Sto      *msolid.PointStore
	Mdl      msolid.Small // material model
	Pol      AddPolicy    // force accumulation policy
	Nworkers int          // number of parallel workers; 0 or 1 => serial
	Log      *logrus.Logger
}

// Workspace holds the element-local buffers of one worker; reused across
// elements so the hot loop does not allocate
type Workspace struct {
	nodes []int
	u     [][3]float64
	uhat  [][3]float64
	f     [][3]float64
	g     [][][3]float64
	detJ  []float64
}

// NewWorkspace allocates the buffers for elements with npe nodes and nip
// integration points
func NewWorkspace(npe, nip int) *Workspace {
	w := &Workspace{
		nodes: make([]int, npe),
		u:     make([][3]float64, npe),
		uhat:  make([][3]float64, npe),
		f:     make([][3]float64, npe),
		g:     make([][][3]float64, nip),
		detJ:  make([]float64, nip),
	}
	for q := 0; q < nip; q++ {
		w.g[q] = make([][3]float64, npe)
	}
	return w
}

func (o *Workspace) zeroForces() {
	for a := range o.f {
		o.f[a][0], o.f[a][1], o.f[a][2] = 0, 0, 0
	}
}

// Integrate accumulates nodal force contributions from the total stress:
//  f[n] += detJ·detF · σ·Finvᵀ · ∇N[n]
// a Piola-type transformation weighting the Cauchy stress back into the
// reference configuration. Mutates only the element-local buffer.
func Integrate(f [][3]float64, detJ, detF float64, finv, sig *tsr.Ten, g [][3]float64) {
	var p tsr.Ten // p := σ·Finvᵀ
	tsr.MulTr(&p, sig, finv)
	c := detJ * detF
	for n := range f {
		f[n][0] += c * (p[0][0]*g[n][0] + p[0][1]*g[n][1] + p[0][2]*g[n][2])
		f[n][1] += c * (p[1][0]*g[n][0] + p[1][1]*g[n][1] + p[1][2]*g[n][2])
		f[n][2] += c * (p[2][0]*g[n][0] + p[2][1]*g[n][1] + p[2][2]*g[n][2])
	}
}

// totalStress recombines the deviatoric components and the mean stress of
// point (k,q) into the full symmetric tensor
func (o *Kernel) totalStress(sig *tsr.Ten, m, q, k int) {
	var s tsr.Sym
	copy(s[:], o.Sto.DevAt(k, q))
	tsr.Sym2Ten(sig, &s)
	mean := o.Sto.Mean[m]
	sig[0][0] += mean
	sig[1][1] += mean
	sig[2][2] += mean
}

// ElemUpdate runs the full pipeline for element k into w. The element's
// forces reach the global array only if every quadrature point succeeds;
// on error nothing has been scattered.
func (o *Kernel) ElemUpdate(k int, w *Workspace) (err error) {

	// gather
	o.Topo.Nodes(k, w.nodes)
	o.Dofs.Gather(w.nodes, w.u, w.uhat)
	if err = o.Grads.ElemGrads(k, w.g, w.detJ); err != nil {
		return
	}
	w.zeroForces()

	// quadrature loop
	nip := o.Grads.Nip()
	var dUdX, dUhatdX, rot, dadt, sig tsr.Ten
	var inc kinem.Increment
	for q := 0; q < nip; q++ {

		// kinematics
		kinem.Gradient(&dUdX, w.u, w.g[q])
		kinem.Gradient(&dUhatdX, w.uhat, w.g[q])
		if err = inc.Calc(&dUdX, &dUhatdX, o.Dt, k, q); err != nil {
			return
		}

		// objective rate decomposition
		kinem.HughesWinget(&rot, &dadt, &inc.L, o.Dt)

		// constitutive update
		m := o.Map.Index(k, q)
		if err = o.Mdl.Update(&dadt, &rot, m, q, k, o.Sto); err != nil {
			return
		}

		// force integration in the deformed configuration
		o.totalStress(&sig, m, q, k)
		Integrate(w.f, w.detJ[q], inc.DetFend, &inc.FendInv, &sig, w.g[q])
	}

	// scatter
	o.Dofs.AddForces(w.nodes, w.f, o.Pol)
	return
}

// Check validates the configuration before any element loop runs
func (o *Kernel) Check() error {
	switch {
	case o.Topo == nil || o.Dofs == nil || o.Grads == nil:
		return cfgErr("topology, dofs and gradient source must all be set")
	case o.Map == nil || o.Sto == nil || o.Mdl == nil:
		return cfgErr("constitutive map, point store and model must all be set")
	case o.Pol == nil:
		return cfgErr("force accumulation policy must be set")
	case o.Dt <= 0:
		return cfgErr("time step must be positive: dt = %g", o.Dt)
	case o.Topo.Npe() != o.Grads.Npe():
		return cfgErr("nodes per element disagree: topology has %d, gradient source has %d", o.Topo.Npe(), o.Grads.Npe())
	case o.Topo.Nnode() != o.Dofs.Nnode():
		return cfgErr("node counts disagree: topology has %d, dofs have %d", o.Topo.Nnode(), o.Dofs.Nnode())
	case o.Sto.Nelem != o.Topo.Nelem():
		return cfgErr("element counts disagree: topology has %d, point store has %d", o.Topo.Nelem(), o.Sto.Nelem)
	case o.Sto.Nip != o.Grads.Nip():
		return cfgErr("quadrature counts disagree: gradient source has %d, point store has %d", o.Grads.Nip(), o.Sto.Nip)
	case o.Map.Nip != o.Grads.Nip():
		return cfgErr("quadrature counts disagree: gradient source has %d, constitutive map has %d", o.Grads.Nip(), o.Map.Nip)
	case o.Map.Idx != nil && len(o.Map.Idx) != o.Topo.Nelem()*o.Map.Nip:
		return cfgErr("constitutive map has %d entries, want %d", len(o.Map.Idx), o.Topo.Nelem()*o.Map.Nip)
	case o.Sto.Nalp < msolid.NIntVars(o.Mdl):
		return cfgErr("point store holds %d internal variables, model needs %d", o.Sto.Nalp, msolid.NIntVars(o.Mdl))
	}

	// an explicit map must assign each point its own slot: repeated or
	// out-of-range entries alias state between points and race in parallel
	if o.Map.Idx != nil {
		npts := o.Topo.Nelem() * o.Map.Nip
		seen := make([]bool, npts)
		for i, m := range o.Map.Idx {
			if m < 0 || m >= npts {
				return cfgErr("constitutive map entry %d is out of range: %d not in [0,%d)", i, m, npts)
			}
			if seen[m] {
				return cfgErr("constitutive map entry %d repeats slot %d", i, m)
			}
			seen[m] = true
		}
	}
	return nil
}

// Run executes one step of the element loop across Nworkers goroutines.
// Element order carries no meaning: the accumulate policy makes the final
// nodal sums order-independent. Any element failure aborts the step and
// is returned; the force array must then be discarded by the caller.
func (o *Kernel) Run() (err error) {
	if err = o.Check(); err != nil {
		return
	}
	nelem := o.Topo.Nelem()
	nw := o.Nworkers
	if nw < 1 {
		nw = 1
	}
	if nw > nelem {
		nw = nelem
	}
	t0 := time.Now()

	if nw == 1 {
		w := NewWorkspace(o.Topo.Npe(), o.Grads.Nip())
		for k := 0; k < nelem; k++ {
			if err = o.ElemUpdate(k, w); err != nil {
				return
			}
		}
	} else {
		var eg errgroup.Group
		for i := 0; i < nw; i++ {
			start := i * nelem / nw
			end := (i + 1) * nelem / nw
			eg.Go(func() error {
				w := NewWorkspace(o.Topo.Npe(), o.Grads.Nip())
				for k := start; k < end; k++ {
					if e := o.ElemUpdate(k, w); e != nil {
						return e
					}
				}
				return nil
			})
		}
		err = eg.Wait()
	}

	if o.Log != nil {
		entry := o.Log.WithFields(logrus.Fields{
			"elements": nelem,
			"workers":  nw,
			"elapsed":  time.Since(t0),
		})
		if err != nil {
			entry.WithError(err).Warn("step failed")
		} else {
			entry.Debug("step done")
		}
	}
	return
}
