// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/thetanet/spectrum"
	"github.com/emer/thetanet/spike"
	"golang.org/x/exp/rand"
)

var (
	// ErrNumericalInstability is returned when any state variable of a run became NaN or Inf.
	ErrNumericalInstability = errors.New("numerical instability")

	// ErrRunComplete is returned by Cycle once all steps have been computed.
	ErrRunComplete = errors.New("run complete")
)

// theta.Network is a network of theta neuron populations driven by a single
// drive oscillator and background noise.  It holds the trajectories of one trial.
type Network struct {
	NetworkStru
	Params  *Params          `desc:"trial parameters -- not modified by the network"`
	SimTime float64          `inactive:"+" desc:"simulated duration (msec)"`
	NSteps  int              `inactive:"+" desc:"number of integration steps T -- trajectories have T+1 samples"`
	T       int              `inactive:"+" desc:"last step computed -- 0 after InitState"`
	Drive   *Pop             `desc:"drive oscillator population, if any"`
	MEGPrjn *Prjn            `desc:"projection whose weighted summed gating is the MEG signal (Ex -> Ex)"`
	MEG     []float64        `view:"-" desc:"MEG signal [T+1]: MEGPrjn G times gating at t-1 summed over all pairs"`
	MEGUnit *etensor.Float64 `view:"-" desc:"per receiving unit MEG contribution [units, T+1]"`
}

// NewNetwork returns a new empty network
func NewNetwork(name string) *Network {
	nt := &Network{}
	nt.InitName(name)
	return nt
}

// Build allocates all state for simTime msec of simulation with the given params.
// The populations and projections must already have been configured.
func (nt *Network) Build(pars *Params, simTime float64) error {
	if err := pars.Validate(); err != nil {
		return err
	}
	if simTime <= 0 || math.IsNaN(simTime) {
		return fmt.Errorf("theta.Network: %v simulation time must be positive: %v", nt.Nm, simTime)
	}
	nt.Params = pars
	nt.SimTime = simTime
	nt.NSteps = pars.NSteps(simTime)
	ndrv := 0
	for _, pl := range nt.Pops {
		if pl.IsDrive() {
			ndrv++
			nt.Drive = pl
		}
	}
	if ndrv > 1 {
		return fmt.Errorf("theta.Network: %v has %d drive populations, max 1", nt.Nm, ndrv)
	}
	for _, pj := range nt.Prjns {
		if pj.Recv.IsDrive() {
			return fmt.Errorf("theta.Network: %v drive population cannot receive projection: %v", nt.Nm, pj.Nm)
		}
	}
	if err := nt.BuildStru(nt.NSteps, pars.RecordGating, pars.NThreads); err != nil {
		return err
	}
	nt.MEG = make([]float64, nt.NSteps+1)
	nmu := 0
	if nt.MEGPrjn != nil {
		nmu = nt.MEGPrjn.Recv.N
	}
	nt.MEGUnit = etensor.NewFloat64([]int{nmu, nt.NSteps + 1}, nil, []string{"Unit", "Time"})
	return nil
}

// InitState zeros all state to the t = 0 initial condition and draws the
// background noise trains from the Params.Seed, in population order
func (nt *Network) InitState() {
	nt.T = 0
	for _, pl := range nt.Pops {
		pl.InitState()
	}
	for _, pj := range nt.Prjns {
		pj.InitState()
	}
	zero(nt.MEG)
	zero(nt.MEGUnit.Values)
	src := rand.NewSource(uint64(nt.Params.Seed))
	rate := nt.Params.NoiseRate()
	for _, pl := range nt.Pops {
		pl.InitNoise(src, rate, nt.SimTime, nt.Params.Neuron.TauR)
	}
}

// Cycle computes the next integration step t = T+1 from step T.
// Returns ErrRunComplete when all steps are done.
func (nt *Network) Cycle() error {
	if nt.T >= nt.NSteps {
		return ErrRunComplete
	}
	t := nt.T + 1
	dt := nt.Params.Dt
	tm := float64(t) * dt
	np := &nt.Params.Neuron
	nt.ThrPopFun(func(pl *Pop) { pl.NoiseFmTrains(t, tm) }, "NoiseFmTrains")
	nt.ThrPrjnFun(func(pj *Prjn) { pj.GateFmPhase(t, np, dt) }, "GateFmPhase")
	nt.MEGFmPrjn(t)
	nt.ThrPopFun(func(pl *Pop) {
		pl.SynFmPrjns(t)
		pl.PhaseStep(t, dt)
	}, "PhaseStep")
	nt.T = t
	return nil
}

// MEGFmPrjn records the MEG signal at step t from the MEG projection's
// summed gating at t-1
func (nt *Network) MEGFmPrjn(t int) {
	pj := nt.MEGPrjn
	if pj == nil {
		return
	}
	nc := nt.NSteps + 1
	sum := 0.0
	for r, gs := range pj.GSum {
		v := pj.Params.G * gs
		nt.MEGUnit.Values[r*nc+t] = v
		sum += v
	}
	nt.MEG[t] = sum
}

// Run initializes the state and computes all steps, then checks stability.
func (nt *Network) Run() error {
	nt.InitState()
	return nt.RunRest()
}

// RunRest computes all remaining steps from the current one and checks stability.
func (nt *Network) RunRest() error {
	nt.StartThreads()
	defer nt.StopThreads()
	for nt.T < nt.NSteps {
		if err := nt.Cycle(); err != nil {
			break
		}
	}
	return nt.CheckStable()
}

// CheckStable scans all computed state for NaN or Inf, returning a wrapped
// ErrNumericalInstability naming the first non-finite value found.
func (nt *Network) CheckStable() error {
	nc := nt.NSteps + 1
	for _, pl := range nt.Pops {
		tsrs := []*etensor.Float64{pl.Theta, pl.Noise, pl.Syn}
		for vi, tsr := range tsrs {
			for i, v := range tsr.Values {
				if isBad(v) {
					vnm := []string{"Theta", "Noise", "Syn"}[vi]
					return fmt.Errorf("%w: Pop: %v %v unit: %d step: %d value: %v", ErrNumericalInstability, pl.Nm, vnm, i/nc, i%nc, v)
				}
			}
		}
	}
	for _, pj := range nt.Prjns {
		n := pj.Send.N * pj.Recv.N
		for i, v := range pj.Gate.Values {
			if isBad(v) {
				si := i % n
				return fmt.Errorf("%w: Prjn: %v send: %d recv: %d slot: %d value: %v", ErrNumericalInstability, pj.Nm, si/pj.Recv.N, si%pj.Recv.N, i/n, v)
			}
		}
	}
	for t, v := range nt.MEG {
		if isBad(v) {
			return fmt.Errorf("%w: MEG step: %d value: %v", ErrNumericalInstability, t, v)
		}
	}
	return nil
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Results

// Spikes returns the spike times of each unit of the population
func (nt *Network) Spikes(pl *Pop) [][]float64 {
	return spike.Trains(pl.Theta, nt.Params.Dt)
}

// PSD computes the power spectral density of the MEG signal
func (nt *Network) PSD(sp *spectrum.Params) (*spectrum.PSD, error) {
	return sp.PSD(nt.MEG, nt.Params.Dt)
}

// SizeReport returns a string reporting the size of each population and projection
// in the network, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	fsz := int(unsafe.Sizeof(float64(0)))
	units := 0
	unitMem := 0
	gates := 0
	gateMem := 0
	for _, pl := range nt.Pops {
		nmem := (len(pl.Theta.Values) + len(pl.Noise.Values) + len(pl.Syn.Values)) * fsz
		for _, tr := range pl.Trains {
			nmem += len(tr) * fsz
		}
		units += pl.N
		unitMem += nmem
		fmt.Fprintf(&b, "%14s:\t Units: %d\t UnitMem: %v \t Sends To:\n", pl.Nm, pl.N, (datasize.ByteSize)(nmem).HumanReadable())
		for _, pj := range pl.SendPrjns {
			ng := pj.Send.N * pj.Recv.N
			gates += ng
			pmem := (len(pj.Gate.Values) + len(pj.GSum)) * fsz
			gateMem += pmem
			fmt.Fprintf(&b, "\t%14s:\t Gates: %d\t Slots: %d\t GateMem: %v\n", pj.Recv.Nm, ng, pj.Slots, (datasize.ByteSize)(pmem).HumanReadable())
		}
	}
	megMem := (len(nt.MEG) + len(nt.MEGUnit.Values)) * fsz
	fmt.Fprintf(&b, "\n\n%14s:\t Units: %d\t UnitMem: %v \t Gates: %d \t GateMem: %v \t MEGMem: %v\n", nt.Nm, units, (datasize.ByteSize)(unitMem).HumanReadable(), gates, (datasize.ByteSize)(gateMem).HumanReadable(), (datasize.ByteSize)(megMem).HumanReadable())
	return b.String()
}
