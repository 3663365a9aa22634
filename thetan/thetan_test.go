// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thetan

import (
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

func TestOpenRate(t *testing.T) {
	tp := &Params{}
	tp.Defaults()
	ths := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi, -math.Pi}
	cor := []float64{math.Exp(-10), math.Exp(-5), 1, 1, 1}
	for i, th := range ths {
		k := tp.OpenRate(th)
		if math.Abs(k-cor[i]) > difTol {
			t.Errorf("OpenRate err: idx: %v, theta: %v, k: %v, cor: %v\n", i, th, k, cor[i])
		}
	}
}

func TestGateStep(t *testing.T) {
	tp := &Params{}
	tp.Defaults()
	// from 0 with full opening: dt * k / TauR
	g := tp.GateStep(0, 1, 2, 0.05)
	if math.Abs(g-0.5) > difTol {
		t.Errorf("GateStep open err: g: %v, cor: 0.5\n", g)
	}
	// closed: pure decay
	g = tp.GateStep(1, 0, 2, 0.05)
	if math.Abs(g-(1-0.05/2)) > difTol {
		t.Errorf("GateStep decay err: g: %v\n", g)
	}
	// steady state of dg = 0 is k/TauR / (1/tau + k/TauR)
	k, tau := 0.3, 8.0
	gss := (k / tp.TauR) / (1/tau + k/tp.TauR)
	if d := tp.GateDelta(gss, k, tau); math.Abs(d) > difTol {
		t.Errorf("GateDelta steady state err: d: %v\n", d)
	}
}

func TestDTheta(t *testing.T) {
	if d := DTheta(0, 0); d != 0 {
		t.Errorf("DTheta rest err: %v\n", d)
	}
	if d := DTheta(math.Pi, 0.7); math.Abs(d-2) > difTol {
		t.Errorf("DTheta at pi must be 2 regardless of input: %v\n", d)
	}
	if d := DTheta(0, 0.25); math.Abs(d-0.5) > difTol {
		t.Errorf("DTheta at 0 must be 2 i: %v\n", d)
	}
	th := 0.0
	for i := 0; i < 100; i++ {
		th = Step(th, 0, 0.1)
	}
	if th != 0 {
		t.Errorf("zero input must stay at 0: %v\n", th)
	}
}

func TestDriveBias(t *testing.T) {
	freqs := []float64{40, 20, 8}
	for _, f := range freqs {
		b := DriveBias(f)
		per := Period(b)
		if math.Abs(per-1000/f) > 1.0e-9 {
			t.Errorf("DriveBias err: freq: %v, bias: %v, period: %v\n", f, b, per)
		}
	}
	if b := DriveBias(0); b != 0 {
		t.Errorf("DriveBias(0) must be 0: %v\n", b)
	}
	if b := DriveBias(-5); b != 0 {
		t.Errorf("DriveBias(-5) must be 0: %v\n", b)
	}
	if !math.IsInf(Period(0), 1) {
		t.Errorf("Period(0) must be +Inf\n")
	}
}

func TestRestPhase(t *testing.T) {
	for _, i := range []float64{-0.01, -0.05, -0.5} {
		th := RestPhase(i)
		if d := DTheta(th, i); math.Abs(d) > difTol {
			t.Errorf("RestPhase not a fixed point: i: %v, theta: %v, d: %v\n", i, th, d)
		}
		// stable: small perturbation shrinks
		th2 := th + 0.01
		for k := 0; k < 10000; k++ {
			th2 = Step(th2, i, 0.05)
		}
		if math.Abs(th2-th) > 1.0e-3 {
			t.Errorf("RestPhase not stable: i: %v, rest: %v, end: %v\n", i, th, th2)
		}
	}
	if !math.IsNaN(RestPhase(0.1)) {
		t.Errorf("RestPhase(0.1) must be NaN\n")
	}
}
