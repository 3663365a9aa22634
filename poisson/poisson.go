// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package poisson generates the homogeneous Poisson background spike trains
that provide noise input to theta neuron populations, and converts them into
a current by summing a bi-exponential synaptic kernel over past spikes.

Times are in msec and rates in events per msec: a background rate given in Hz
must be divided by 1000.
*/
package poisson

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Train is an ordered list of spike times (msec), strictly increasing.
type Train []float64

// NewTrain draws one Poisson train with the given rate (events / msec) on
// [0, horizon), from successive exponential inter-arrival intervals.
// The interval that crosses the horizon is drawn and discarded.
// A rate <= 0 returns an empty train without drawing.
func NewTrain(src rand.Source, rate, horizon float64) Train {
	tr := Train{}
	if rate <= 0 {
		return tr
	}
	ex := distuv.Exponential{Rate: rate, Src: src}
	tm := 0.0
	for tm < horizon {
		tm += ex.Rand()
		if tm < horizon {
			tr = append(tr, tm)
		}
	}
	return tr
}

// Generate draws n independent trains in unit order from the one source,
// so the full set is a pure function of the source seed.
func Generate(src rand.Source, n int, rate, horizon float64) []Train {
	trs := make([]Train, n)
	for i := range trs {
		trs[i] = NewTrain(src, rate, horizon)
	}
	return trs
}

// Current returns the direct sum of kernel k over all spikes strictly before t.
func (tr Train) Current(t float64, k *Kernel) float64 {
	sum := 0.0
	for _, tn := range tr {
		if tn >= t {
			break
		}
		sum += k.At(t - tn)
	}
	return sum
}

// Count returns the number of spikes strictly before t.
func (tr Train) Count(t float64) int {
	n := 0
	for _, tn := range tr {
		if tn >= t {
			break
		}
		n++
	}
	return n
}

//////////////////////////////////////////////////////////////////////////////////////
//  Kernel

// Kernel is the bi-exponential synaptic kernel
// A (exp(-lag / TauFast) - exp(-lag / TauRise)) / (TauFast - TauRise) for lag > 0.
// TauFast == TauRise is degenerate (division by zero), and yields non-finite
// currents that surface as numerical instability downstream.
type Kernel struct {
	A       float64 `desc:"amplitude scaling of each noise spike"`
	TauFast float64 `desc:"decay time constant (msec) -- the target population's own decay constant"`
	TauRise float64 `desc:"rise time constant (msec) -- the shared synaptic rise constant"`
}

// At returns the kernel value at the given lag since a spike, 0 for lag <= 0.
func (k *Kernel) At(lag float64) float64 {
	if lag <= 0 {
		return 0
	}
	return k.A * (math.Exp(-lag/k.TauFast) - math.Exp(-lag/k.TauRise)) / (k.TauFast - k.TauRise)
}

// Peak returns the lag at which the kernel is maximal.
func (k *Kernel) Peak() float64 {
	return k.TauFast * k.TauRise * math.Log(k.TauFast/k.TauRise) / (k.TauFast - k.TauRise)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Integrator

// Integrator evaluates Train.Current exactly, for a non-decreasing sequence of
// times, by keeping the sum of each of the two exponentials over the spikes
// already passed and decaying them between evaluations.  Each call costs
// O(1) plus the number of newly passed spikes.
type Integrator struct {
	Kernel Kernel
	Train  Train

	next int
	tm   float64
	fast float64
	rise float64
}

// Init sets the kernel and train and resets the running state to time 0.
func (it *Integrator) Init(k Kernel, tr Train) {
	it.Kernel = k
	it.Train = tr
	it.Reset()
}

// Reset restarts integration from time 0.
func (it *Integrator) Reset() {
	it.next = 0
	it.tm = 0
	it.fast = 0
	it.rise = 0
}

// Current returns the summed kernel over spikes strictly before t.
// t must not decrease between calls (until Reset).
func (it *Integrator) Current(t float64) float64 {
	k := &it.Kernel
	if t > it.tm {
		del := t - it.tm
		it.fast *= math.Exp(-del / k.TauFast)
		it.rise *= math.Exp(-del / k.TauRise)
		it.tm = t
	}
	for it.next < len(it.Train) {
		tn := it.Train[it.next]
		if tn >= t {
			break
		}
		lag := t - tn
		it.fast += math.Exp(-lag / k.TauFast)
		it.rise += math.Exp(-lag / k.TauRise)
		it.next++
	}
	if it.next == 0 {
		return 0
	}
	return k.A * (it.fast - it.rise) / (k.TauFast - k.TauRise)
}
