// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// OnePoint applies the single-point explicit update y[i] += dx·dydx[i]
// over nw workers. The slices must have the same length; entries are
// disjoint per worker so no accumulate policy is needed.
func OnePoint(y, dydx []float64, dx float64, nw int) error {
	if len(y) != len(dydx) {
		return cfgErr("one-point update arrays disagree: %d and %d entries", len(y), len(dydx))
	}
	return runElems(len(y), nw, func(start, end int) error {
		for i := start; i < end; i++ {
			y[i] += dx * dydx[i]
		}
		return nil
	})
}

// OnePointLumped applies the lumped-mass acceleration update
// vel += dt·f/m. Accepts node-major arrays (len(vel) == 3·len(mass)) or
// single-component arrays (len(vel) == len(mass)).
func OnePointLumped(vel, f, mass []float64, dt float64, nw int) error {
	if len(vel) != len(f) {
		return cfgErr("one-point update arrays disagree: %d and %d entries", len(vel), len(f))
	}
	var stride int
	switch len(vel) {
	case 3 * len(mass):
		stride = 3
	case len(mass):
		stride = 1
	default:
		return cfgErr("mass array has %d entries for %d velocity entries", len(mass), len(vel))
	}
	return runElems(len(mass), nw, func(start, end int) error {
		for n := start; n < end; n++ {
			c := dt / mass[n]
			for i := 0; i < stride; i++ {
				vel[stride*n+i] += c * f[stride*n+i]
			}
		}
		return nil
	})
}

// DisplacementUpdate sets uhat = vel·dt and advances u += uhat for the
// node-major layout
func (o *NodeMajorDofs) DisplacementUpdate(vel []float64, dt float64, nw int) error {
	if len(vel) != len(o.U) {
		return cfgErr("velocity array has %d entries for %d nodes", len(vel), o.Nnode())
	}
	return runElems(len(o.U), nw, func(start, end int) error {
		for i := start; i < end; i++ {
			o.Uhat[i] = vel[i] * dt
			o.U[i] += o.Uhat[i]
		}
		return nil
	})
}

// DisplacementUpdate sets uhat = vel·dt and advances u += uhat for the
// component-major layout
func (o *CompMajorDofs) DisplacementUpdate(vx, vy, vz []float64, dt float64, nw int) error {
	nn := o.Nnode()
	if len(vx) != nn || len(vy) != nn || len(vz) != nn {
		return cfgErr("velocity arrays have %d/%d/%d entries for %d nodes", len(vx), len(vy), len(vz), nn)
	}
	return runElems(nn, nw, func(start, end int) error {
		for n := start; n < end; n++ {
			o.Uhx[n] = vx[n] * dt
			o.Uhy[n] = vy[n] * dt
			o.Uhz[n] = vz[n] * dt
			o.Ux[n] += o.Uhx[n]
			o.Uy[n] += o.Uhy[n]
			o.Uz[n] += o.Uhz[n]
		}
		return nil
	})
}
