// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/emer/etable/v2/minmax"
	"github.com/emer/thetanet/spectrum"
	"github.com/emer/thetanet/spike"
	"github.com/emer/thetanet/theta"
	"gopkg.in/yaml.v3"
)

// PopStats summarizes the spiking of one population
type PopStats struct {
	Units  int     `yaml:"units"`
	Spikes int     `yaml:"spikes"`
	// Rate is the mean rate in Hz.  Units with a negative rest phase
	// count one crossing at the first step as they settle below 0,
	// which adds 1000/SimTime Hz.
	Rate   float64 `yaml:"rate_hz"`
}

// Manifest describes one saved trial
type Manifest struct {
	Name      string              `yaml:"name"`
	Created   time.Time           `yaml:"created"`
	SimTime   float64             `yaml:"sim_time"`
	NSteps    int                 `yaml:"n_steps"`
	Stable    bool                `yaml:"stable"`
	Error     string              `yaml:"error,omitempty"`
	Pops      map[string]PopStats `yaml:"pops"`
	PeakFreq  float64             `yaml:"peak_freq_hz,omitempty"`
	PeakPower float64             `yaml:"peak_power,omitempty"`
	Files     []string            `yaml:"files"`
	Params    theta.Params        `yaml:"params"`
}

// ManifestPath returns the path of the manifest for trial name
func (st *Store) ManifestPath(name string) string {
	return filepath.Join(st.Dir, name+"-meta.yaml")
}

// SaveManifest writes the manifest for the trial
func (st *Store) SaveManifest(m *Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("artifact: failed to encode manifest %s: %w", m.Name, err)
	}
	path := st.ManifestPath(m.Name)
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("artifact: failed to write %s: %w", path, err)
	}
	return nil
}

// LoadManifest reads the manifest for trial name
func (st *Store) LoadManifest(name string) (*Manifest, error) {
	path := st.ManifestPath(name)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingArtifact, path, err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingArtifact, path, err)
	}
	return m, nil
}

// SaveFlags select which arrays of a trial are written
type SaveFlags struct {
	MEG      bool `default:"true" desc:"save the MEG trace"`
	Phases   bool `desc:"save the phase trajectories of every population except the drive"`
	PSD      bool `desc:"save the PSD of the MEG trace, and the shared freqs file"`
	Manifest bool `default:"true" desc:"save a YAML manifest describing the trial"`
}

// PeakBand is the frequency band (Hz) searched for the PSD peak reported in manifests
var PeakBand = minmax.F64{Min: 1, Max: 100}

// SaveTrial writes the selected arrays of a completed trial and returns its manifest.
// runErr is the error returned by the run, recorded in the manifest.
// The PSD is computed with sp whenever the PSD or the manifest is saved.
func (st *Store) SaveTrial(name string, nt *theta.Network, sp *spectrum.Params, flags SaveFlags, runErr error) (*Manifest, error) {
	m := &Manifest{
		Name:    name,
		Created: time.Now(),
		SimTime: nt.SimTime,
		NSteps:  nt.NSteps,
		Stable:  runErr == nil,
		Pops:    make(map[string]PopStats),
		Params:  *nt.Params,
	}
	if runErr != nil {
		m.Error = runErr.Error()
	}
	if flags.MEG {
		if err := st.SaveTrace(name, MEGSuffix, nt.MEG); err != nil {
			return nil, err
		}
		m.Files = append(m.Files, filepath.Base(st.Path(name, MEGSuffix)))
	}
	for _, pl := range nt.Pops {
		if pl.IsDrive() {
			continue
		}
		trs := nt.Spikes(pl)
		m.Pops[pl.Nm] = PopStats{Units: pl.N, Spikes: spike.Count(trs), Rate: spike.MeanRate(trs, nt.SimTime)}
		if !flags.Phases {
			continue
		}
		sf := SuffixForPop(pl.Nm)
		if err := st.SaveMatrix(name, sf, pl.Theta); err != nil {
			return nil, err
		}
		m.Files = append(m.Files, filepath.Base(st.Path(name, sf)))
	}
	if flags.PSD || flags.Manifest {
		ps, err := nt.PSD(sp)
		if err != nil {
			return nil, err
		}
		_, m.PeakFreq, m.PeakPower = ps.Peak(PeakBand)
		if flags.PSD {
			if err := st.SaveTrace(name, PSDSuffix, ps.Power); err != nil {
				return nil, err
			}
			if err := st.SaveFreqs(ps.Freqs); err != nil {
				return nil, err
			}
			m.Files = append(m.Files, filepath.Base(st.Path(name, PSDSuffix)), filepath.Base(st.Path(FreqsName, "")))
		}
	}
	if flags.Manifest {
		if err := st.SaveManifest(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
