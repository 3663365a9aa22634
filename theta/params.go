// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"fmt"

	"github.com/emer/thetanet/thetan"
)

// DefDt is the default integration step: 8192 steps per 500 msec.
const DefDt = 500.0 / 8192.0

// Params are all the constants for one simulated trial.  Projection weights
// are named G<send><recv>: GEI is Ex -> Inh, GIE is Inh -> Ex.
// In the FSLTS variant B is the basket (FS) population and C is the SOM one.
// Params are not modified by the network once it is built.
type Params struct {
	Variant       Variants      `desc:"which fixed network graph to build"`
	Neuron        thetan.Params `view:"inline" desc:"phase-gated synaptic opening parameters, shared by all projections"`
	Dt            float64       `def:"0.06103515625" desc:"integration step (msec) -- must be small relative to all time constants, which is not checked"`
	Seed          int64         `desc:"seed for the background noise trains -- the full trial is a deterministic function of Params"`
	NThreads      int           `def:"1" desc:"number of goroutines used within each step for the per-population and per-projection updates -- results do not depend on this"`
	RecordGating  bool          `desc:"keep the full gating history [T+1, send, recv] for every projection, instead of the last two steps only -- memory grows with send x recv x T"`
	RecvPhaseSelf bool          `desc:"for self projections (Ex -> Ex, Inh -> Inh, FS -> FS), index the opening rate by the receiving unit's phase instead of the sending unit's, which reproduces the array broadcasting of the reference model scripts"`

	DriveFreq float64 `def:"40" desc:"drive oscillator frequency (Hz) -- <= 0 disables the drive"`
	BkgRate   float64 `def:"33.3" desc:"background noise spike rate per unit (Hz)"`
	NoiseA    float64 `def:"0.5,0.65" desc:"amplitude of each background noise spike"`

	NEx    int     `def:"20" desc:"number of excitatory units"`
	NInh   int     `def:"10" desc:"number of inhibitory units (EI)"`
	NFS    int     `def:"10" desc:"number of fast-spiking basket units (FSLTS)"`
	NSOM   int     `def:"10" desc:"number of SOM units (FSLTS)"`
	TauEx  float64 `def:"2" desc:"decay constant (msec) of excitatory synapses, including the drive"`
	TauInh float64 `def:"8" desc:"decay constant (msec) of inhibitory synapses (EI)"`
	TauFS  float64 `def:"8" desc:"decay constant (msec) of FS synapses (FSLTS)"`
	TauSOM float64 `def:"50" desc:"decay constant (msec) of SOM synapses (FSLTS)"`
	BEx    float64 `def:"-0.01" desc:"bias current of excitatory units"`
	BInh   float64 `def:"-0.01" desc:"bias current of inhibitory units (EI)"`
	BFS    float64 `def:"-0.01" desc:"bias current of FS units (FSLTS)"`
	BSOM   float64 `def:"-0.05" desc:"bias current of SOM units (FSLTS)"`

	GEE float64 `def:"0.015" desc:"Ex -> Ex weight (both variants)"`
	GDE float64 `def:"0.3" desc:"drive -> Ex weight (both variants)"`
	GEI float64 `def:"0.025" desc:"Ex -> Inh weight (EI)"`
	GIE float64 `def:"0.015" desc:"Inh -> Ex weight (EI)"`
	GII float64 `def:"0.02" desc:"Inh -> Inh weight (EI)"`
	GEB float64 `def:"0.025" desc:"Ex -> FS weight (FSLTS)"`
	GEC float64 `def:"0.025" desc:"Ex -> SOM weight (FSLTS)"`
	GBE float64 `def:"0.015" desc:"FS -> Ex weight (FSLTS)"`
	GCE float64 `def:"0.015" desc:"SOM -> Ex weight (FSLTS)"`
	GBB float64 `def:"0.02" desc:"FS -> FS weight (FSLTS)"`
	GCB float64 `def:"0.02" desc:"SOM -> FS weight (FSLTS)"`
	GBC float64 `def:"0.02" desc:"FS -> SOM weight (FSLTS)"`
	GDB float64 `def:"0.08" desc:"drive -> FS weight (FSLTS)"`
}

// Defaults sets the EI variant defaults, together with the FSLTS-only values.
func (pr *Params) Defaults() {
	pr.Variant = EI
	pr.Neuron.Defaults()
	pr.Dt = DefDt
	pr.Seed = 1
	pr.NThreads = 1
	pr.RecordGating = false
	pr.RecvPhaseSelf = false

	pr.DriveFreq = 40
	pr.BkgRate = 33.3
	pr.NoiseA = 0.5

	pr.NEx = 20
	pr.NInh = 10
	pr.NFS = 10
	pr.NSOM = 10
	pr.TauEx = 2
	pr.TauInh = 8
	pr.TauFS = 8
	pr.TauSOM = 50
	pr.BEx = -0.01
	pr.BInh = -0.01
	pr.BFS = -0.01
	pr.BSOM = -0.05

	pr.GEE = 0.015
	pr.GDE = 0.3
	pr.GEI = 0.025
	pr.GIE = 0.015
	pr.GII = 0.02
	pr.GEB = 0.025
	pr.GEC = 0.025
	pr.GBE = 0.015
	pr.GCE = 0.015
	pr.GBB = 0.02
	pr.GCB = 0.02
	pr.GBC = 0.02
	pr.GDB = 0.08
}

// DefaultsFSLTS sets the defaults and then switches to the FSLTS variant,
// which uses a larger noise amplitude.
func (pr *Params) DefaultsFSLTS() {
	pr.Defaults()
	pr.Variant = FSLTS
	pr.NoiseA = 0.65
}

// Update must be called after any changes to parameters
func (pr *Params) Update() {
	pr.Neuron.Update()
}

// Validate returns an error for parameters that cannot produce a network.
// Numerical stability is not checked here: see Network.CheckStable.
func (pr *Params) Validate() error {
	if pr.Dt <= 0 {
		return fmt.Errorf("theta.Params: Dt must be positive: %v", pr.Dt)
	}
	if pr.Variant < 0 || pr.Variant >= VariantsN {
		return fmt.Errorf("theta.Params: unknown Variant: %v", pr.Variant)
	}
	if pr.NEx < 0 || pr.NInh < 0 || pr.NFS < 0 || pr.NSOM < 0 {
		return fmt.Errorf("theta.Params: population sizes must not be negative")
	}
	return nil
}

// NoiseRate returns the background rate in events / msec
func (pr *Params) NoiseRate() float64 {
	return pr.BkgRate / 1000
}

// NSteps returns the number of integration steps T for simTime msec: the
// trajectories hold T+1 samples at times 0, Dt, ..., T*Dt.
func (pr *Params) NSteps(simTime float64) int {
	return int(simTime / pr.Dt)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Pop, Prjn params

// PopParams are the per-population constants
type PopParams struct {
	Tau      float64 `desc:"decay constant (msec) of the synapses this population sends"`
	Bias     float64 `desc:"constant applied current -- for the drive, pi^2 / period^2"`
	NoiseA   float64 `desc:"amplitude of each background noise spike -- 0 gives no noise"`
	NoiseTau float64 `desc:"decay constant (msec) of the noise kernel -- 0 means use Tau"`
}

// KernelTau returns the decay constant of the noise kernel
func (pp *PopParams) KernelTau() float64 {
	if pp.NoiseTau > 0 {
		return pp.NoiseTau
	}
	return pp.Tau
}

// PrjnParams are the per-projection constants
type PrjnParams struct {
	G         float64 `desc:"weight applied to the gating summed over senders"`
	Tau       float64 `desc:"decay constant (msec) of the gating variables -- the sending population's Tau"`
	RecvPhase bool    `desc:"index the opening rate by the receiving unit's phase (self projections only)"`
}
