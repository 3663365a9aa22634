// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/emer/thetanet/spectrum"
	"github.com/emer/thetanet/theta"
)

func TestTables(t *testing.T) {
	pars := &theta.Params{}
	pars.Defaults()
	pars.NEx, pars.NInh = 4, 2
	nt, err := theta.New(pars, 100)
	if err != nil {
		t.Fatal(err)
	}
	if err := nt.Run(); err != nil {
		t.Fatal(err)
	}
	sp := &spectrum.Params{}
	sp.Defaults()
	ps, err := nt.PSD(sp)
	if err != nil {
		t.Fatal(err)
	}
	pt := PSDTable(ps)
	if pt.Rows != len(ps.Power) {
		t.Errorf("PSDTable rows: %v, cor: %v\n", pt.Rows, len(ps.Power))
	}
	hz := ps.Hz()
	for k := range ps.Power {
		if pt.CellFloat("Freq", k) != hz[k] || pt.CellFloat("Power", k) != ps.Power[k] {
			t.Errorf("PSDTable err: idx: %v\n", k)
			break
		}
	}

	dt := PopTable(nt)
	if dt.Rows != len(nt.Pops) {
		t.Errorf("PopTable rows: %v, cor: %v\n", dt.Rows, len(nt.Pops))
	}
	for i, pl := range nt.Pops {
		if dt.CellString("Pop", i) != pl.Nm || int(dt.CellFloat("Units", i)) != pl.N {
			t.Errorf("PopTable err: idx: %v, pop: %v\n", i, dt.CellString("Pop", i))
		}
	}

	st, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SaveTable(dt, "pops.tsv"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(st.Dir + "/pops.tsv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	nl := 0
	for sc.Scan() {
		if nl == 0 && !strings.Contains(sc.Text(), "Pop") {
			t.Errorf("pops.tsv header err: %v\n", sc.Text())
		}
		nl++
	}
	if nl != len(nt.Pops)+1 {
		t.Errorf("pops.tsv lines: %v, cor: %v\n", nl, len(nt.Pops)+1)
	}
}
