// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions used to verify the kernels
package ana

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// PolarRotation returns the rotation R of the right polar decomposition
// F = R·U computed exactly via SVD: F = W·Σ·Vᵀ  =>  R = W·Vᵀ.
// Used as the reference against which the Hughes-Winget incremental
// rotation is checked.
func PolarRotation(F [][]float64) (R [][]float64, err error) {
	n := len(F)
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, F[i][j])
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return nil, chk.Err("SVD of deformation gradient failed")
	}
	var w, v mat.Dense
	svd.UTo(&w)
	svd.VTo(&v)
	var r mat.Dense
	r.Mul(&w, v.T())
	R = make([][]float64, n)
	for i := 0; i < n; i++ {
		R[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			R[i][j] = r.At(i, j)
		}
	}
	return
}
