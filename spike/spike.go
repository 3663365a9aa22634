// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spike extracts spike times from unwrapped theta neuron phase
trajectories, and computes simple rate statistics on the resulting trains.

A spike occurs at sample i when the phase mod 2 pi lies above pi at i and
below pi at i-1.  The sample before the first one is taken to be 0.
Detection assumes the step is small enough that a phase never advances by
more than pi in one sample; this is not checked.

Because the mod is taken on the unwrapped phase, a unit that drifts from 0 to
a slightly negative rest phase also registers one crossing at that point.
*/
package spike

import (
	"math"

	"github.com/emer/etable/v2/etensor"
	"gonum.org/v1/gonum/stat"
)

// Wrap returns theta mod 2 pi in [0, 2 pi), for negative phases too.
func Wrap(theta float64) float64 {
	m := math.Mod(theta, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m
}

// Times returns the spike times (i * dt, msec) of one phase trajectory.
func Times(theta []float64, dt float64) []float64 {
	st := []float64{}
	prv := 0.0
	for i, th := range theta {
		if Wrap(th) > math.Pi && Wrap(prv) < math.Pi {
			st = append(st, float64(i)*dt)
		}
		prv = th
	}
	return st
}

// Trains returns the spike times of every unit of a [units, time] phase tensor.
func Trains(tsr *etensor.Float64, dt float64) [][]float64 {
	nu := tsr.Dim(0)
	nt := tsr.Dim(1)
	trs := make([][]float64, nu)
	for u := 0; u < nu; u++ {
		trs[u] = Times(tsr.Values[u*nt:(u+1)*nt], dt)
	}
	return trs
}

// Count returns the total number of spikes across trains.
func Count(trs [][]float64) int {
	n := 0
	for _, tr := range trs {
		n += len(tr)
	}
	return n
}

// Rates returns the firing rate (Hz) of each train over dur msec.
func Rates(trs [][]float64, dur float64) []float64 {
	rs := make([]float64, len(trs))
	if dur <= 0 {
		return rs
	}
	for i, tr := range trs {
		rs[i] = 1000 * float64(len(tr)) / dur
	}
	return rs
}

// MeanRate returns the mean firing rate (Hz) across trains over dur msec,
// 0 if there are no trains.
func MeanRate(trs [][]float64, dur float64) float64 {
	if len(trs) == 0 {
		return 0
	}
	return stat.Mean(Rates(trs, dur), nil)
}

// ISIs returns the inter-spike intervals of one train.
func ISIs(tr []float64) []float64 {
	if len(tr) < 2 {
		return nil
	}
	isi := make([]float64, len(tr)-1)
	for i := range isi {
		isi[i] = tr[i+1] - tr[i]
	}
	return isi
}

// CV returns the coefficient of variation of the inter-spike intervals of one
// train: a periodic train has CV 0, a Poisson train CV 1.  NaN with fewer than 3 spikes.
func CV(tr []float64) float64 {
	isi := ISIs(tr)
	if len(isi) < 2 {
		return math.NaN()
	}
	mn, sd := stat.MeanStdDev(isi, nil)
	return sd / mn
}
