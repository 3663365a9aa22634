// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"fmt"

	"github.com/emer/thetanet/thetan"
)

// Standard population names
const (
	DriveNm = "Drive"
	ExNm    = "Ex"
	InhNm   = "Inh"
	FSNm    = "FS"
	SOMNm   = "SOM"
)

// New configures a network for the Params Variant and builds it for simTime msec.
func New(pars *Params, simTime float64) (*Network, error) {
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	pars.Update()
	nt := NewNetwork(pars.Variant.String())
	var err error
	switch pars.Variant {
	case EI:
		err = nt.ConfigEI(pars)
	case FSLTS:
		err = nt.ConfigFSLTS(pars)
	default:
		err = fmt.Errorf("theta.New: unknown Variant: %v", pars.Variant)
	}
	if err != nil {
		return nil, err
	}
	if err := nt.Build(pars, simTime); err != nil {
		return nil, err
	}
	return nt, nil
}

// addPop adds a noisy population unless it is empty, in which case it and
// all its projections are left out.
func (nt *Network) addPop(name string, typ PopTypes, n int, tau, bias float64, pars *Params) (*Pop, error) {
	if n == 0 {
		return nil, nil
	}
	return nt.AddPop(name, typ, n, PopParams{Tau: tau, Bias: bias, NoiseA: pars.NoiseA, NoiseTau: tau})
}

// connect adds a projection if both populations exist, using the sender's Tau
func (nt *Network) connect(send, recv *Pop, typ PrjnTypes, g float64, pars *Params) *Prjn {
	if send == nil || recv == nil {
		return nil
	}
	pp := PrjnParams{G: g, Tau: send.Params.Tau}
	if send == recv && pars.RecvPhaseSelf {
		pp.RecvPhase = true
	}
	return nt.ConnectPops(send, recv, typ, pp)
}

// addDrive adds the single-unit drive oscillator.  Its synapses use TauEx.
func (nt *Network) addDrive(pars *Params) (*Pop, error) {
	return nt.AddPop(DriveNm, DrivePop, 1, PopParams{Tau: pars.TauEx, Bias: thetan.DriveBias(pars.DriveFreq)})
}

// ConfigEI configures the excitatory / inhibitory network:
// Ex <-> Inh all-to-all with self projections, and the drive onto Ex.
func (nt *Network) ConfigEI(pars *Params) error {
	drv, err := nt.addDrive(pars)
	if err != nil {
		return err
	}
	ex, err := nt.addPop(ExNm, ExcitPop, pars.NEx, pars.TauEx, pars.BEx, pars)
	if err != nil {
		return err
	}
	inh, err := nt.addPop(InhNm, InhibPop, pars.NInh, pars.TauInh, pars.BInh, pars)
	if err != nil {
		return err
	}
	nt.MEGPrjn = nt.connect(ex, ex, ExcitPrjn, pars.GEE, pars)
	nt.connect(ex, inh, ExcitPrjn, pars.GEI, pars)
	nt.connect(inh, ex, InhibPrjn, pars.GIE, pars)
	nt.connect(inh, inh, InhibPrjn, pars.GII, pars)
	nt.connect(drv, ex, ExcitPrjn, pars.GDE, pars)
	return nil
}

// ConfigFSLTS configures the excitatory / FS basket / SOM network.
// SOM has no self projection and no drive.
func (nt *Network) ConfigFSLTS(pars *Params) error {
	drv, err := nt.addDrive(pars)
	if err != nil {
		return err
	}
	ex, err := nt.addPop(ExNm, ExcitPop, pars.NEx, pars.TauEx, pars.BEx, pars)
	if err != nil {
		return err
	}
	fs, err := nt.addPop(FSNm, InhibPop, pars.NFS, pars.TauFS, pars.BFS, pars)
	if err != nil {
		return err
	}
	som, err := nt.addPop(SOMNm, InhibPop, pars.NSOM, pars.TauSOM, pars.BSOM, pars)
	if err != nil {
		return err
	}
	nt.MEGPrjn = nt.connect(ex, ex, ExcitPrjn, pars.GEE, pars)
	nt.connect(ex, fs, ExcitPrjn, pars.GEB, pars)
	nt.connect(ex, som, ExcitPrjn, pars.GEC, pars)
	nt.connect(fs, ex, InhibPrjn, pars.GBE, pars)
	nt.connect(som, ex, InhibPrjn, pars.GCE, pars)
	nt.connect(fs, fs, InhibPrjn, pars.GBB, pars)
	nt.connect(som, fs, InhibPrjn, pars.GCB, pars)
	nt.connect(fs, som, InhibPrjn, pars.GBC, pars)
	nt.connect(drv, ex, ExcitPrjn, pars.GDE, pars)
	nt.connect(drv, fs, ExcitPrjn, pars.GDB, pars)
	return nil
}
