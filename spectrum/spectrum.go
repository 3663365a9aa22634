// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spectrum estimates the power spectral density of a simulated MEG
trace, using a single-segment periodogram of the trace after an initial
transient has been discarded.  The scaling matches the default one-sided
density of matplotlib's mlab.psd with NFFT equal to the segment length:
no window taper, no detrending, no overlap.

Time is in msec, so frequencies are in cycles per msec (kHz) unless
converted with PSD.Hz.
*/
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/emer/etable/v2/minmax"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrSegmentTooShort is returned when fewer than 2 samples remain after the transient.
	ErrSegmentTooShort = errors.New("spectrum: segment too short")

	// ErrBadStep is returned for a non-positive sampling step.
	ErrBadStep = errors.New("spectrum: sampling step must be positive")
)

// Params control the PSD estimate
type Params struct {
	Transient float64 `def:"0.2" desc:"length of the leading transient dropped before the periodogram, as a multiple of the sampling rate: the first ceil(Transient * fs) samples are dropped, plus one more if needed to leave an even number"`
}

func (sp *Params) Defaults() {
	sp.Transient = 0.2
}

// startTol absorbs floating point error in Transient * fs before rounding up,
// e.g. 0.2 * 20 evaluating to just above 4.
const startTol = 1.0e-9

// Start returns the index of the first retained sample for a trace of
// npts samples at sampling rate fs, with the parity fix applied so that
// npts - Start is even.
func (sp *Params) Start(npts int, fs float64) int {
	st := int(math.Ceil(sp.Transient*fs - startTol))
	if st < 0 {
		st = 0
	}
	if (npts-st)%2 != 0 {
		st++
	}
	return st
}

// PSD is a one-sided power spectral density estimate
type PSD struct {
	Power []float64 `desc:"power density per frequency bin, Power[0] (DC) is always 0"`
	Freqs []float64 `desc:"bin frequencies (cycles / msec), k * Fs / N for k = 0..N/2"`
	Start int       `desc:"index of the first retained sample of the trace"`
	N     int       `desc:"number of samples in the analyzed segment -- always even"`
	Fs    float64   `desc:"sampling rate (samples / msec)"`
}

// PSD computes the spectrum of trace sampled every dt msec.
func (sp *Params) PSD(trace []float64, dt float64) (*PSD, error) {
	if dt <= 0 || math.IsNaN(dt) {
		return nil, fmt.Errorf("%w: dt = %v", ErrBadStep, dt)
	}
	fs := 1 / dt
	st := sp.Start(len(trace), fs)
	n := len(trace) - st
	if n < 2 {
		return nil, fmt.Errorf("%w: %d samples, %d after transient", ErrSegmentTooShort, len(trace), n)
	}
	pxx, freqs := Periodogram(trace[st:], fs)
	pxx[0] = 0
	return &PSD{Power: pxx, Freqs: freqs, Start: st, N: n, Fs: fs}, nil
}

// Periodogram returns the one-sided density |X_k|^2 / (fs N), doubled for
// all bins except DC and (for even N) Nyquist, together with the bin frequencies.
func Periodogram(x []float64, fs float64) (pxx, freqs []float64) {
	n := len(x)
	nf := n/2 + 1
	xf := fft.FFTReal(x)
	pxx = make([]float64, nf)
	freqs = make([]float64, nf)
	scale := 1 / (fs * float64(n))
	for k := 0; k < nf; k++ {
		a := cmplx.Abs(xf[k])
		p := a * a * scale
		if k > 0 && !(n%2 == 0 && k == n/2) {
			p *= 2
		}
		pxx[k] = p
		freqs[k] = float64(k) * fs / float64(n)
	}
	return
}

// Hz returns the bin frequencies in Hz.
func (ps *PSD) Hz() []float64 {
	hz := make([]float64, len(ps.Freqs))
	floats.ScaleTo(hz, 1000, ps.Freqs)
	return hz
}

// Peak returns the index, frequency (Hz) and power of the strongest bin with
// frequency in the given band (Hz, inclusive).  Index is -1 when no bin falls in the band.
func (ps *PSD) Peak(band minmax.F64) (int, float64, float64) {
	mi := -1
	mx := 0.0
	hz := ps.Hz()
	for k, f := range hz {
		if !band.InRange(f) {
			continue
		}
		if mi < 0 || ps.Power[k] > mx {
			mi = k
			mx = ps.Power[k]
		}
	}
	if mi < 0 {
		return -1, 0, 0
	}
	return mi, hz[mi], mx
}

// BandPower returns the summed power density times bin width over the given band (Hz).
func (ps *PSD) BandPower(band minmax.F64) float64 {
	df := ps.Fs / float64(ps.N)
	sum := 0.0
	for k, f := range ps.Freqs {
		if band.InRange(1000 * f) {
			sum += ps.Power[k]
		}
	}
	return sum * df
}

// Mean returns the elementwise average of equal-length traces.
func Mean(traces [][]float64) ([]float64, error) {
	if len(traces) == 0 {
		return nil, errors.New("spectrum.Mean: no traces")
	}
	n := len(traces[0])
	avg := make([]float64, n)
	for i, tr := range traces {
		if len(tr) != n {
			return nil, fmt.Errorf("spectrum.Mean: trace %d has %d samples, expected %d", i, len(tr), n)
		}
		floats.Add(avg, tr)
	}
	floats.Scale(1/float64(len(traces)), avg)
	return avg, nil
}
