// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package thetan provides the canonical theta neuron (Ermentrout-Kopell type I)
phase dynamics, and the phase-gated opening rate that drives the synaptic
gating variables of the projections that a theta neuron sends.

The phase of a theta neuron is not wrapped: it grows without bound while the
unit fires, and a spike is the passage of the phase through pi (mod 2 pi).
With a constant input I > 0 the unit fires periodically with period pi / sqrt(I),
and with I < 0 it rests at a stable fixed point below pi.

All times are in msec.
*/
package thetan

import "math"

// Params are the gating parameters shared by all projections in a network.
type Params struct {
	Eta  float64 `def:"5" desc:"sharpness of the phase-gated opening rate exp(-Eta (1 + cos theta)) -- larger values restrict opening to a narrower window of phases around pi, i.e., around the spike"`
	TauR float64 `def:"0.1" desc:"synaptic rise time constant (msec), shared by all projections and by the rise of the background noise kernel"`

	RiseDt float64 `view:"-" json:"-" xml:"-" yaml:"-" desc:"rate = 1 / TauR"`
}

func (tp *Params) Defaults() {
	tp.Eta = 5
	tp.TauR = 0.1
	tp.Update()
}

// Update must be called after any changes to parameters
func (tp *Params) Update() {
	tp.RiseDt = 1 / tp.TauR
}

// OpenRate returns the phase-gated opening rate K(theta) = exp(-Eta (1 + cos theta)),
// which is 1 at theta = pi and exp(-2 Eta) at theta = 0.
func (tp *Params) OpenRate(theta float64) float64 {
	return math.Exp(-tp.Eta * (1 + math.Cos(theta)))
}

// GateDelta is the rate of change of gating variable g with decay constant
// tau, given the opening rate k of its sending unit.  g is not clamped.
func (tp *Params) GateDelta(g, k, tau float64) float64 {
	return -g/tau + k*(1-g)*tp.RiseDt
}

// GateStep is one explicit Euler step of size dt of a gating variable.
func (tp *Params) GateStep(g, k, tau, dt float64) float64 {
	return g + dt*tp.GateDelta(g, k, tau)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Phase

// DTheta is the theta neuron vector field: (1 - cos theta) + i (1 + cos theta)
func DTheta(theta, i float64) float64 {
	cs := math.Cos(theta)
	return (1 - cs) + i*(1+cs)
}

// Step is one explicit Euler step of size dt of the phase with total input current i.
func Step(theta, i, dt float64) float64 {
	return theta + dt*DTheta(theta, i)
}

// DriveBias returns the constant input current that makes a lone theta neuron
// fire at freq Hz: pi^2 / period^2 with period = 1000 / freq msec.
// A freq <= 0 returns 0: a unit with zero input stays at rest at theta = 0.
func DriveBias(freq float64) float64 {
	if freq <= 0 {
		return 0
	}
	period := 1000 / freq
	return (math.Pi * math.Pi) / (period * period)
}

// Period returns the firing period (msec) of a lone unit with constant input i,
// pi / sqrt(i), or +Inf for i <= 0 (excitable regime: no spontaneous firing).
func Period(i float64) float64 {
	if i <= 0 {
		return math.Inf(1)
	}
	return math.Pi / math.Sqrt(i)
}

// RestPhase returns the stable rest phase of a unit with constant input i < 0,
// which lies in (-pi, 0].  It returns NaN for i >= 0 where no rest state exists
// (i == 0 has the half-stable point theta = 0, which is returned).
func RestPhase(i float64) float64 {
	switch {
	case i == 0:
		return 0
	case i > 0:
		return math.NaN()
	}
	return -math.Acos((1 + i) / (1 - i))
}
