// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/thetanet/spectrum"
	"github.com/emer/thetanet/spike"
	"github.com/emer/thetanet/theta"
)

// LogPrec is precision for saving float values in tables
const LogPrec = 6

// PSDTable returns a table with the frequency (Hz) and power of each PSD bin
func PSDTable(ps *spectrum.PSD) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "PSD")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	sch := etable.Schema{
		{Name: "Freq", Type: etensor.FLOAT64},
		{Name: "Power", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, len(ps.Power))
	hz := ps.Hz()
	for k, p := range ps.Power {
		dt.SetCellFloat("Freq", k, hz[k])
		dt.SetCellFloat("Power", k, p)
	}
	return dt
}

// PopTable returns a table with one row per population of the network with
// its size, spike count, mean rate and mean ISI coefficient of variation
func PopTable(nt *theta.Network) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "Pops")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	sch := etable.Schema{
		{Name: "Pop", Type: etensor.STRING},
		{Name: "Units", Type: etensor.INT64},
		{Name: "Spikes", Type: etensor.INT64},
		{Name: "Rate", Type: etensor.FLOAT64},
		{Name: "CV", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, len(nt.Pops))
	for i, pl := range nt.Pops {
		trs := nt.Spikes(pl)
		cv, ncv := 0.0, 0
		for _, tr := range trs {
			if c := spike.CV(tr); !math.IsNaN(c) {
				cv += c
				ncv++
			}
		}
		if ncv > 0 {
			cv /= float64(ncv)
		}
		dt.SetCellString("Pop", i, pl.Nm)
		dt.SetCellFloat("Units", i, float64(pl.N))
		dt.SetCellFloat("Spikes", i, float64(spike.Count(trs)))
		dt.SetCellFloat("Rate", i, spike.MeanRate(trs, nt.SimTime))
		dt.SetCellFloat("CV", i, cv)
	}
	return dt
}

// SaveTable writes the table as tab-separated values with headers, in the store directory
func (st *Store) SaveTable(dt *etable.Table, fname string) error {
	path := filepath.Join(st.Dir, fname)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifact: failed to create %s: %w", path, err)
	}
	if err := dt.WriteCSV(f, etable.Tab, etable.Headers); err != nil {
		f.Close()
		return fmt.Errorf("artifact: failed to write %s: %w", path, err)
	}
	return f.Close()
}
