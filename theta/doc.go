// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package theta simulates small networks of coupled theta neuron populations
driven by a periodic drive oscillator and Poisson background noise, and
records a MEG-like signal: the summed excitatory-to-excitatory synaptic
currents.

A Network holds populations (Pop) of identical units, and dense all-to-all
projections (Prjn) between them with one synaptic gating variable per pair of
units.  The drive is a Pop with a single unit and no inputs, so its
projections are ordinary projections.  Two fixed graphs are provided, selected
by Params.Variant:

	EI:    Ex, Inh -- drive onto Ex
	FSLTS: Ex, FS (basket), SOM -- drive onto Ex and FS, no SOM self projection

Integration is explicit Euler with a fixed step Params.Dt.  Every quantity at
step t is computed from step t-1 only, in this order within Cycle:

  - noise current at t from the background trains (per Pop)
  - gating summed over senders at t-1, and gating advanced to t (per Prjn)
  - MEG at t from the Ex -> Ex summed gating
  - synaptic input at t and phase advanced to t (per Pop)

Each stage may run on Params.NThreads goroutines; every task writes only its
own population or projection so results do not depend on the thread count.

After the last step, Run scans all state and returns a wrapped
ErrNumericalInstability if anything became NaN or Inf.
*/
package theta
