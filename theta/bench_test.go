// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import "testing"

func benchRun(b *testing.B, pars *Params, simTime float64) {
	nt, err := New(pars, simTime)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := nt.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEI(b *testing.B) {
	pars := &Params{}
	pars.Defaults()
	benchRun(b, pars, 100)
}

func BenchmarkFSLTS(b *testing.B) {
	pars := &Params{}
	pars.DefaultsFSLTS()
	benchRun(b, pars, 100)
}

func BenchmarkEILargeThreads(b *testing.B) {
	pars := &Params{}
	pars.Defaults()
	pars.NEx = 200
	pars.NInh = 100
	pars.NThreads = 4
	benchRun(b, pars, 20)
}
