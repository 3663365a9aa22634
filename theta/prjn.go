// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"fmt"

	"github.com/emer/etable/v2/etensor"
	"github.com/emer/thetanet/thetan"
)

// Prjn is a dense all-to-all projection from Send to Recv, with one
// synaptic gating variable per (sender, receiver) pair.
type Prjn struct {
	Nm     string           `desc:"name of the projection, Send->Recv"`
	Typ    PrjnTypes        `desc:"sign of the projection"`
	Idx    int              `desc:"index of the projection in the network"`
	Send   *Pop             `desc:"sending population"`
	Recv   *Pop             `desc:"receiving population"`
	Params PrjnParams       `view:"inline" desc:"projection parameters"`
	Slots  int              `inactive:"+" desc:"number of time slots in Gate: T+1 when the full history is recorded, else 2"`
	Gate   *etensor.Float64 `view:"-" desc:"gating variables [slots, send, recv] -- step t is in slot t mod Slots"`
	GSum   []float64        `view:"-" desc:"gating at t-1 summed over senders, per receiver -- computed at step t"`

	rateBuf []float64
}

func (pj *Prjn) Name() string  { return pj.Nm }
func (pj *Prjn) Label() string { return pj.Nm }

// Sign returns +1 for excitatory and -1 for inhibitory projections
func (pj *Prjn) Sign() float64 {
	if pj.Typ == InhibPrjn {
		return -1
	}
	return 1
}

// IsSelf is true for projections from a population onto itself
func (pj *Prjn) IsSelf() bool {
	return pj.Send == pj.Recv
}

// Build allocates the gating state
func (pj *Prjn) Build(nsteps int, record bool) error {
	if pj.Params.RecvPhase && !pj.IsSelf() {
		return fmt.Errorf("Prjn: %v RecvPhase is only valid for self projections", pj.Nm)
	}
	pj.Slots = 2
	if record {
		pj.Slots = nsteps + 1
	}
	ns, nr := pj.Send.N, pj.Recv.N
	pj.Gate = etensor.NewFloat64([]int{pj.Slots, ns, nr}, nil, []string{"Time", "Send", "Recv"})
	pj.GSum = make([]float64, nr)
	if pj.Params.RecvPhase {
		pj.rateBuf = make([]float64, nr)
	} else {
		pj.rateBuf = make([]float64, ns)
	}
	return nil
}

// InitState zeros the gating state
func (pj *Prjn) InitState() {
	zero(pj.Gate.Values)
	zero(pj.GSum)
}

// Slot returns the Gate slot holding step t
func (pj *Prjn) Slot(t int) int {
	return t % pj.Slots
}

// SlotVals returns the [send, recv] gating values of step t
func (pj *Prjn) SlotVals(t int) []float64 {
	n := pj.Send.N * pj.Recv.N
	sl := pj.Slot(t)
	return pj.Gate.Values[sl*n : (sl+1)*n]
}

// GateAt returns the gating variable between sender s and receiver r at step t,
// which must still be held in the Gate slots.
func (pj *Prjn) GateAt(t, s, r int) float64 {
	return pj.SlotVals(t)[s*pj.Recv.N+r]
}

// GateFmPhase computes, for step t, the per-receiver sum of the gating at t-1
// into GSum, and advances every gating variable from t-1 to t using the
// sending phase at t-1.
func (pj *Prjn) GateFmPhase(t int, np *thetan.Params, dt float64) {
	ns, nr := pj.Send.N, pj.Recv.N
	pv := pj.SlotVals(t - 1)
	cv := pj.SlotVals(t)
	tau := pj.Params.Tau
	for r := range pj.GSum {
		pj.GSum[r] = 0
	}
	if pj.Params.RecvPhase {
		for r := 0; r < nr; r++ {
			pj.rateBuf[r] = np.OpenRate(pj.Recv.Phase(r, t-1))
		}
	} else {
		for s := 0; s < ns; s++ {
			pj.rateBuf[s] = np.OpenRate(pj.Send.Phase(s, t-1))
		}
	}
	for s := 0; s < ns; s++ {
		si := s * nr
		for r := 0; r < nr; r++ {
			var k float64
			if pj.Params.RecvPhase {
				k = pj.rateBuf[r]
			} else {
				k = pj.rateBuf[s]
			}
			g := pv[si+r]
			pj.GSum[r] += g
			cv[si+r] = np.GateStep(g, k, tau, dt)
		}
	}
}
