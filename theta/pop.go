// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"fmt"

	"github.com/emer/etable/v2/etensor"
	"github.com/emer/thetanet/poisson"
	"github.com/emer/thetanet/thetan"
	"golang.org/x/exp/rand"
)

// Pop is a population of identical, unconnected theta neurons that share
// parameters.  All state is held as [units, T+1] trajectories, so that every
// quantity at step t is computed from step t-1 only.
type Pop struct {
	Nm        string               `desc:"name of the population -- must be unique within the network"`
	Typ       PopTypes             `desc:"role of the population: excitatory, inhibitory or drive"`
	Idx       int                  `desc:"index of the population in the network"`
	N         int                  `desc:"number of units"`
	Params    PopParams            `view:"inline" desc:"population parameters"`
	RecvPrjns []*Prjn              `desc:"projections received by this population"`
	SendPrjns []*Prjn              `desc:"projections sent by this population"`
	Theta     *etensor.Float64     `view:"-" desc:"unwrapped phase trajectories [units, T+1]"`
	Noise     *etensor.Float64     `view:"-" desc:"background noise current [units, T+1]"`
	Syn       *etensor.Float64     `view:"-" desc:"summed synaptic input current [units, T+1]"`
	Trains    []poisson.Train      `view:"-" desc:"background noise spike trains, per unit"`
	Integs    []poisson.Integrator `view:"-" desc:"noise kernel integrators, per unit"`

	nt int // T+1
}

func (pl *Pop) Name() string  { return pl.Nm }
func (pl *Pop) Label() string { return pl.Nm }

// IsDrive is true for the drive oscillator population
func (pl *Pop) IsDrive() bool { return pl.Typ == DrivePop }

// Build allocates the trajectories for nsteps integration steps
func (pl *Pop) Build(nsteps int) error {
	if pl.N < 0 {
		return fmt.Errorf("Pop: %v has negative size: %v", pl.Nm, pl.N)
	}
	if pl.IsDrive() && pl.N != 1 {
		return fmt.Errorf("Pop: %v drive population must have exactly 1 unit, has: %v", pl.Nm, pl.N)
	}
	pl.nt = nsteps + 1
	shp := []int{pl.N, pl.nt}
	nms := []string{"Unit", "Time"}
	pl.Theta = etensor.NewFloat64(shp, nil, nms)
	pl.Noise = etensor.NewFloat64(shp, nil, nms)
	pl.Syn = etensor.NewFloat64(shp, nil, nms)
	pl.Integs = make([]poisson.Integrator, pl.N)
	return nil
}

// InitState zeros all trajectories and restarts the noise integrators
func (pl *Pop) InitState() {
	zero(pl.Theta.Values)
	zero(pl.Noise.Values)
	zero(pl.Syn.Values)
	for i := range pl.Integs {
		pl.Integs[i].Reset()
	}
}

// InitNoise draws the background noise trains for each unit from src,
// in unit order, and sets up their kernel integrators.  The amplitude does
// not affect the draws, so a population with NoiseA = 0 still consumes its
// share of the source.  The drive has no noise.
func (pl *Pop) InitNoise(src rand.Source, rate, horizon, tauR float64) {
	if pl.IsDrive() {
		pl.Trains = nil
		return
	}
	pl.Trains = poisson.Generate(src, pl.N, rate, horizon)
	k := pl.NoiseKernel(tauR)
	for i := range pl.Integs {
		pl.Integs[i].Init(k, pl.Trains[i])
	}
}

// NoiseKernel returns the kernel applied to each background noise spike
func (pl *Pop) NoiseKernel(tauR float64) poisson.Kernel {
	return poisson.Kernel{A: pl.Params.NoiseA, TauFast: pl.Params.KernelTau(), TauRise: tauR}
}

// UnitIdx returns the flat index of unit u at step t in the trajectories
func (pl *Pop) UnitIdx(u, t int) int {
	return u*pl.nt + t
}

// Phase returns the phase of unit u at step t
func (pl *Pop) Phase(u, t int) float64 {
	return pl.Theta.Values[u*pl.nt+t]
}

// Trajectory returns the phase trajectory of unit u (a view, not a copy)
func (pl *Pop) Trajectory(u int) []float64 {
	return pl.Theta.Values[u*pl.nt : (u+1)*pl.nt]
}

// NoiseFmTrains computes the noise current at step t (time tm) for all units
func (pl *Pop) NoiseFmTrains(t int, tm float64) {
	if len(pl.Trains) == 0 {
		for u := 0; u < pl.N; u++ {
			pl.Noise.Values[u*pl.nt+t] = 0
		}
		return
	}
	for u := 0; u < pl.N; u++ {
		pl.Noise.Values[u*pl.nt+t] = pl.Integs[u].Current(tm)
	}
}

// SynFmPrjns sums the signed, weighted gating computed by the receiving
// projections at step t into the synaptic input at t
func (pl *Pop) SynFmPrjns(t int) {
	for u := 0; u < pl.N; u++ {
		sum := 0.0
		for _, pj := range pl.RecvPrjns {
			sum += pj.Sign() * pj.Params.G * pj.GSum[u]
		}
		pl.Syn.Values[u*pl.nt+t] = sum
	}
}

// PhaseStep advances all phases from t-1 to t with the bias, synaptic and
// noise currents at t
func (pl *Pop) PhaseStep(t int, dt float64) {
	for u := 0; u < pl.N; u++ {
		i := u*pl.nt + t
		in := pl.Params.Bias + pl.Syn.Values[i] + pl.Noise.Values[i]
		pl.Theta.Values[i] = thetan.Step(pl.Theta.Values[i-1], in, dt)
	}
}

func zero(vals []float64) {
	for i := range vals {
		vals[i] = 0
	}
}
