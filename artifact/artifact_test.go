// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/etable/v2/etensor"
	"github.com/emer/thetanet/spectrum"
	"github.com/emer/thetanet/theta"
)

func TestPyFloat(t *testing.T) {
	vals := []float64{40, 0.275, 0.3, -2, 0, 33.3, 1e-05, 1e16, 123456789}
	cor := []string{"40.0", "0.275", "0.3", "-2.0", "0.0", "33.3", "1e-05", "1e+16", "123456789.0"}
	for i, v := range vals {
		if s := PyFloat(v); s != cor[i] {
			t.Errorf("PyFloat err: idx: %v, v: %v, s: %v, cor: %v\n", i, v, s, cor[i])
		}
	}
}

func TestTrialName(t *testing.T) {
	nm := TrialName("drive_0275_g_and_tau_inh", 0.275, 40, 1234)
	cor := "drive_0275_g_and_tau_inhdrive_strength_0.275_drive_frequency_40.0_seed_1234"
	if nm != cor {
		t.Errorf("TrialName err: %v, cor: %v\n", nm, cor)
	}
	if nm := AvgName("ctl", 30); nm != "ctl_drive_frequency_30.0" {
		t.Errorf("AvgName err: %v\n", nm)
	}
	if sf := SuffixForPop("FS"); sf != "Bask" {
		t.Errorf("FS suffix err: %v\n", sf)
	}
	if sf := SuffixForPop("Inh"); sf != "Inh" {
		t.Errorf("Inh suffix err: %v\n", sf)
	}
}

func TestRoundTrip(t *testing.T) {
	st, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	x := []float64{0, 1.5, -2.25, 3e-9}
	if err := st.SaveTrace("trial", MEGSuffix, x); err != nil {
		t.Fatal(err)
	}
	if !st.Exists("trial", MEGSuffix) {
		t.Errorf("saved trace does not exist\n")
	}
	y, err := st.LoadTrace("trial", MEGSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if len(y) != len(x) {
		t.Fatalf("trace length err: %v\n", len(y))
	}
	for i := range x {
		if x[i] != y[i] {
			t.Errorf("trace err: idx: %v, v: %v, cor: %v\n", i, y[i], x[i])
		}
	}

	tsr := etensor.NewFloat64([]int{3, 5}, nil, []string{"Unit", "Time"})
	for i := range tsr.Values {
		tsr.Values[i] = float64(i) * 0.5
	}
	if err := st.SaveMatrix("trial", "Ex", tsr); err != nil {
		t.Fatal(err)
	}
	ld, err := st.LoadMatrix("trial", "Ex")
	if err != nil {
		t.Fatal(err)
	}
	if ld.Dim(0) != 3 || ld.Dim(1) != 5 {
		t.Fatalf("matrix shape err: %v\n", ld.Shapes())
	}
	for i := range tsr.Values {
		if tsr.Values[i] != ld.Values[i] {
			t.Errorf("matrix err: idx: %v, v: %v, cor: %v\n", i, ld.Values[i], tsr.Values[i])
		}
	}

	seeds := []int64{17, 3, 99999999999}
	sp := filepath.Join(st.Dir, "Seeds.npy")
	if err := SaveSeeds(sp, seeds); err != nil {
		t.Fatal(err)
	}
	ls, err := LoadSeeds(sp)
	if err != nil {
		t.Fatal(err)
	}
	for i := range seeds {
		if seeds[i] != ls[i] {
			t.Errorf("seed order err: idx: %v, v: %v, cor: %v\n", i, ls[i], seeds[i])
		}
	}
}

func TestMissing(t *testing.T) {
	st, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadTrace("nope", MEGSuffix); !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("expected ErrMissingArtifact, got: %v\n", err)
	}
	if _, err := st.LoadMatrix("nope", "Ex"); !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("expected ErrMissingArtifact, got: %v\n", err)
	}
	if _, err := LoadSeeds(filepath.Join(st.Dir, "Seeds.npy")); !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("expected ErrMissingArtifact, got: %v\n", err)
	}
	if _, err := st.LoadManifest("nope"); !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("expected ErrMissingArtifact, got: %v\n", err)
	}
	// malformed
	if err := os.WriteFile(st.Path("bad", MEGSuffix), []byte("not a numpy file"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadTrace("bad", MEGSuffix); !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("expected ErrMissingArtifact for malformed file, got: %v\n", err)
	}
}

func TestSaveTrial(t *testing.T) {
	pars := &theta.Params{}
	pars.DefaultsFSLTS()
	pars.NEx, pars.NFS, pars.NSOM = 4, 2, 2
	nt, err := theta.New(pars, 100)
	if err != nil {
		t.Fatal(err)
	}
	rerr := nt.Run()
	if rerr != nil {
		t.Fatal(rerr)
	}
	st, err := NewStore(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	sp := &spectrum.Params{}
	sp.Defaults()
	name := TrialName("test", pars.GDE, pars.DriveFreq, pars.Seed)
	flags := SaveFlags{MEG: true, Phases: true, PSD: true, Manifest: true}
	m, err := st.SaveTrial(name, nt, sp, flags, rerr)
	if err != nil {
		t.Fatal(err)
	}
	for _, sf := range []string{MEGSuffix, "Ex", "Bask", "Chand", PSDSuffix} {
		if !st.Exists(name, sf) {
			t.Errorf("missing file for suffix: %v\n", sf)
		}
	}
	if st.Exists(name, "Drive") {
		t.Errorf("drive phases should not be saved\n")
	}
	meg, err := st.LoadTrace(name, MEGSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if len(meg) != nt.NSteps+1 {
		t.Errorf("MEG length err: %v, cor: %v\n", len(meg), nt.NSteps+1)
	}
	ex, err := st.LoadMatrix(name, "Ex")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Dim(0) != 4 || ex.Dim(1) != nt.NSteps+1 {
		t.Errorf("Ex shape err: %v\n", ex.Shapes())
	}

	lm, err := st.LoadManifest(name)
	if err != nil {
		t.Fatal(err)
	}
	if lm.Name != m.Name || lm.NSteps != nt.NSteps || !lm.Stable {
		t.Errorf("manifest err: %+v\n", lm)
	}
	if lm.Params.Variant != theta.FSLTS || lm.Params.GDB != pars.GDB {
		t.Errorf("manifest params err: variant: %v, gdb: %v\n", lm.Params.Variant, lm.Params.GDB)
	}
	if ps, ok := lm.Pops["SOM"]; !ok || ps.Units != 2 {
		t.Errorf("manifest SOM stats err: %+v\n", lm.Pops)
	}
}
