// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "trials.db")
	c, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	seeds := []int64{55, 7, 31}
	// record out of order, as ranks would
	order := []int{2, 0, 1}
	for _, freq := range []float64{40, 20} {
		for _, si := range order {
			e := &Entry{Name: fmt.Sprintf("t%d-%v", si, freq), Base: "ctl", Variant: "EI",
				DriveG: 0.3, DriveFreq: freq, Seed: seeds[si], SeedIdx: si, SimTime: 500, Dt: 0.05,
				MEGPath: "x", Stable: true}
			if err := c.Record(ctx, e); err != nil {
				t.Fatal(err)
			}
		}
	}
	n, err := c.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("Count err: %v, cor: 6\n", n)
	}
	ents, err := c.Trials(ctx, "ctl", 0.3, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 3 {
		t.Fatalf("Trials err: n: %v, cor: 3\n", len(ents))
	}
	for i, e := range ents {
		if e.SeedIdx != i || e.Seed != seeds[i] || !e.Stable || e.DriveFreq != 40 {
			t.Errorf("Trials order err: idx: %v, entry: %+v\n", i, e)
		}
	}
	freqs, err := c.Frequencies(ctx, "ctl", 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if len(freqs) != 2 || freqs[0] != 40 || freqs[1] != 20 {
		t.Errorf("Frequencies err: %v\n", freqs)
	}
	if ents, _ := c.Trials(ctx, "other", 0.3, 40); len(ents) != 0 {
		t.Errorf("other base should have no trials: %v\n", ents)
	}

	// re-recording replaces
	e := ents0(t, c)
	e.PeakFreq = 39.5
	if err := c.Record(ctx, &e); err != nil {
		t.Fatal(err)
	}
	if n, _ := c.Count(ctx); n != 6 {
		t.Errorf("re-record should replace: count: %v\n", n)
	}
	if err := c.Record(ctx, &Entry{}); err == nil {
		t.Errorf("empty name must be an error\n")
	}
}

func ents0(t *testing.T, c *Catalog) Entry {
	t.Helper()
	ents, err := c.Trials(context.Background(), "ctl", 0.3, 20)
	if err != nil || len(ents) == 0 {
		t.Fatalf("no trials: %v\n", err)
	}
	return ents[0]
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trials.db")
	c, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Record(ctx, &Entry{Name: "a", Base: "b", Variant: "EI", MEGPath: "m"}); err != nil {
		t.Fatal(err)
	}
	c.Close()
	c, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if n, _ := c.Count(ctx); n != 1 {
		t.Errorf("reopened catalog count: %v, cor: 1\n", n)
	}
}
