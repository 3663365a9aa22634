// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poisson

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

const difTol = 1.0e-9

func TestTrainOrder(t *testing.T) {
	trs := Generate(rand.NewSource(1), 50, 0.0333, 500)
	for u, tr := range trs {
		for i, tn := range tr {
			if tn <= 0 || tn >= 500 {
				t.Errorf("spike out of range: unit: %v, idx: %v, t: %v\n", u, i, tn)
			}
			if i > 0 && tn <= tr[i-1] {
				t.Errorf("spike times not increasing: unit: %v, idx: %v, t: %v, prv: %v\n", u, i, tn, tr[i-1])
			}
		}
	}
}

func TestZeroRate(t *testing.T) {
	trs := Generate(rand.NewSource(1), 10, 0, 500)
	if len(trs) != 10 {
		t.Fatalf("wrong number of trains: %v\n", len(trs))
	}
	for u, tr := range trs {
		if len(tr) != 0 {
			t.Errorf("rate 0 must give an empty train: unit: %v, n: %v\n", u, len(tr))
		}
	}
}

func TestSeeds(t *testing.T) {
	a := Generate(rand.NewSource(42), 20, 0.0333, 500)
	b := Generate(rand.NewSource(42), 20, 0.0333, 500)
	c := Generate(rand.NewSource(43), 20, 0.0333, 500)
	same := true
	for u := range a {
		if len(a[u]) != len(b[u]) {
			t.Fatalf("same seed, different train lengths: unit: %v\n", u)
		}
		for i := range a[u] {
			if a[u][i] != b[u][i] {
				t.Errorf("same seed, different spike: unit: %v, idx: %v\n", u, i)
			}
		}
		if len(a[u]) != len(c[u]) {
			same = false
			continue
		}
		for i := range a[u] {
			if a[u][i] != c[u][i] {
				same = false
			}
		}
	}
	if same {
		t.Errorf("different seeds gave identical trains\n")
	}
}

func TestRate(t *testing.T) {
	// 1000 units x 1000 msec at 33.3 Hz: mean 33300, sd ~182
	trs := Generate(rand.NewSource(7), 1000, 33.3/1000, 1000)
	n := 0
	for _, tr := range trs {
		n += len(tr)
	}
	exp := 33300.0
	sd := math.Sqrt(exp)
	if math.Abs(float64(n)-exp) > 5*sd {
		t.Errorf("total spike count out of range: n: %v, expected: %v +- %v\n", n, exp, 5*sd)
	}
}

func TestKernel(t *testing.T) {
	k := &Kernel{A: 0.5, TauFast: 2, TauRise: 0.1}
	if v := k.At(0); v != 0 {
		t.Errorf("kernel at 0 lag must be 0: %v\n", v)
	}
	if v := k.At(-1); v != 0 {
		t.Errorf("kernel at negative lag must be 0: %v\n", v)
	}
	pk := k.Peak()
	vp := k.At(pk)
	if k.At(pk-0.01) > vp || k.At(pk+0.01) > vp {
		t.Errorf("kernel Peak is not a maximum: lag: %v\n", pk)
	}
	cor := 0.5 * (math.Exp(-1.0/2) - math.Exp(-1.0/0.1)) / 1.9
	if v := k.At(1); math.Abs(v-cor) > difTol {
		t.Errorf("kernel at 1: %v, cor: %v\n", v, cor)
	}
}

func TestIntegrator(t *testing.T) {
	trs := Generate(rand.NewSource(3), 5, 0.05, 300)
	trs = append(trs, Train{}, Train{1, 1.5, 1.5000001, 20})
	dt := 500.0 / 8192.0
	for u, tr := range trs {
		k := Kernel{A: 0.65, TauFast: 8, TauRise: 0.1}
		var it Integrator
		it.Init(k, tr)
		for st := 0; st <= 4915; st++ {
			tm := float64(st) * dt
			dir := tr.Current(tm, &k)
			rec := it.Current(tm)
			if math.Abs(dir-rec) > difTol {
				t.Errorf("integrator != direct sum: unit: %v, step: %v, dir: %v, rec: %v\n", u, st, dir, rec)
				break
			}
		}
	}
}
