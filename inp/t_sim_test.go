// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read and wire run definition")

	sim, err := ReadSim("data", "uniaxial.sim")
	if err != nil {
		tst.Errorf("ReadSim failed: %v\n", err)
		return
	}
	chk.IntAssert(sim.Data.Nsteps, 20)
	chk.IntAssert(sim.Data.Nworkers, 4)
	chk.IntAssert(sim.Grid.Nx*sim.Grid.Ny*sim.Grid.Nz, 64)
	chk.Float64(tst, "dt", 1e-17, sim.Data.Dt, 1.0)
	if sim.Key != "uniaxial" {
		tst.Errorf("wrong run key: %q\n", sim.Key)
		return
	}
	if sim.Mat.Model != "lin-elast" {
		tst.Errorf("wrong model name: %q\n", sim.Mat.Model)
		return
	}

	ker, err := sim.NewKernel()
	if err != nil {
		tst.Errorf("NewKernel failed: %v\n", err)
		return
	}
	if err = ker.Check(); err != nil {
		tst.Errorf("kernel configuration is inconsistent: %v\n", err)
		return
	}
	chk.IntAssert(ker.Topo.Nelem(), 64)
	chk.IntAssert(ker.Dofs.Nnode(), 125)
	io.Pforan("desc = %v\n", sim.Data.Desc)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. defaults and layout variants")

	dir := tst.TempDir()
	write := func(fn, content string) {
		if err := os.WriteFile(filepath.Join(dir, fn), []byte(content), 0644); err != nil {
			tst.Fatalf("cannot write %s: %v", fn, err)
		}
	}

	// minimal definition picks the defaults
	write("mini.sim", `{
		"data" : { "dt":0.5 },
		"grid" : { "nx":1, "ny":1, "nz":1 },
		"mat"  : { "model":"lin-elast", "prms":[{"n":"K","v":100},{"n":"G","v":60}] }
	}`)
	sim, err := ReadSim(dir, "mini.sim")
	if err != nil {
		tst.Errorf("ReadSim failed: %v\n", err)
		return
	}
	if sim.Data.Layout != "node-major" || sim.Data.Grads != "on-the-fly" || sim.Data.Accum != "atomic" {
		tst.Errorf("wrong defaults: %+v\n", sim.Data)
		return
	}
	chk.IntAssert(sim.Data.Nsteps, 1)
	chk.IntAssert(sim.Data.Nworkers, 1)

	// every layout × storage pairing wires a consistent kernel
	for _, layout := range []string{"node-major", "comp-major"} {
		for _, grads := range []string{"node-major", "comp-major", "on-the-fly"} {
			sim.Data.Layout = layout
			sim.Data.Grads = grads
			ker, err := sim.NewKernel()
			if err != nil {
				tst.Errorf("NewKernel(%s,%s) failed: %v\n", layout, grads, err)
				return
			}
			if err = ker.Check(); err != nil {
				tst.Errorf("kernel(%s,%s) is inconsistent: %v\n", layout, grads, err)
				return
			}
		}
	}
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. invalid definitions are rejected")

	dir := tst.TempDir()
	write := func(fn, content string) {
		if err := os.WriteFile(filepath.Join(dir, fn), []byte(content), 0644); err != nil {
			tst.Fatalf("cannot write %s: %v", fn, err)
		}
	}

	cases := map[string]string{
		"nodt.sim":     `{"grid":{"nx":1,"ny":1,"nz":1}, "mat":{"model":"lin-elast"}}`,
		"nogrid.sim":   `{"data":{"dt":1}, "mat":{"model":"lin-elast"}}`,
		"nomat.sim":    `{"data":{"dt":1}, "grid":{"nx":1,"ny":1,"nz":1}}`,
		"badlay.sim":   `{"data":{"dt":1,"layout":"zigzag"}, "grid":{"nx":1,"ny":1,"nz":1}, "mat":{"model":"lin-elast"}}`,
		"badacc.sim":   `{"data":{"dt":1,"accum":"hope"}, "grid":{"nx":1,"ny":1,"nz":1}, "mat":{"model":"lin-elast"}}`,
		"plainpar.sim": `{"data":{"dt":1,"accum":"plain","nworkers":4}, "grid":{"nx":1,"ny":1,"nz":1}, "mat":{"model":"lin-elast"}}`,
		"broken.sim":   `{"data":`,
	}
	for fn, content := range cases {
		write(fn, content)
		if _, err := ReadSim(dir, fn); err == nil {
			tst.Errorf("ReadSim(%s) should have failed\n", fn)
			return
		}
	}
	if _, err := ReadSim(dir, "missing.sim"); err == nil {
		tst.Errorf("ReadSim should have failed for a missing file\n")
		return
	}

	// unknown model is caught when wiring the kernel
	write("badmat.sim", `{"data":{"dt":1}, "grid":{"nx":1,"ny":1,"nz":1}, "mat":{"model":"unobtainium"}}`)
	sim, err := ReadSim(dir, "badmat.sim")
	if err != nil {
		tst.Errorf("ReadSim failed: %v\n", err)
		return
	}
	if _, err = sim.NewKernel(); err == nil {
		tst.Errorf("NewKernel should have failed for an unknown model\n")
	}
}
