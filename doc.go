// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package thetanet is the overall repository for the theta neuron network model
of auditory steady-state entrainment, which simulates a MEG-like signal from
small networks of coupled theta neurons driven by a periodic drive and
Poisson background noise.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* thetan: the theta neuron equations: phase velocity, phase-gated synaptic
opening rate, and the gating update.

* poisson: background noise spike trains and the bi-exponential kernel applied to them.

* theta: populations, projections and the network that integrates them step by
step, with the EI and FSLTS variants and the MEG signal.

* spike, spectrum: spike times from phase trajectories, and the PSD of the MEG signal.

* artifact, catalog: saving trials as .npy files with manifests, and a SQLite
catalog of batch trials.

* examples: these compile into runnable programs.  examples/thetasim runs single
trials, seed x drive frequency batches and their averages.  examples/bench
times networks of increasing size.
*/
package thetanet
