// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/emer/emergent/v2/timer"
)

// FunChan is a channel that runs functions on a worker thread
type FunChan chan func(th int)

// theta.NetworkStru holds the basic structural components of a network
// (populations and projections) and the threading infrastructure
type NetworkStru struct {
	Nm     string          `desc:"overall name of network -- helps discriminate if there are multiple"`
	Pops   []*Pop          `desc:"list of populations"`
	Prjns  []*Prjn         `desc:"list of projections"`
	PopMap map[string]*Pop `view:"-" desc:"map of name to populations -- population names must be unique"`

	NThreads int                    `inactive:"+" desc:"number of parallel threads (go routines) used within each step -- set from Params.NThreads during Build"`
	ThrChans []FunChan              `view:"-" desc:"function channels, per thread -- nil when the threads are not running"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function (step of processing)"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"network-level wait group for synchronizing threaded calls"`
}

// InitName sets the name and initializes the maps
func (nt *NetworkStru) InitName(name string) {
	nt.Nm = name
	nt.PopMap = make(map[string]*Pop)
	nt.FunTimes = make(map[string]*timer.Time)
}

func (nt *NetworkStru) Name() string  { return nt.Nm }
func (nt *NetworkStru) Label() string { return nt.Nm }
func (nt *NetworkStru) NPops() int    { return len(nt.Pops) }

// PopByName returns a population by looking it up by name in the map (nil if not found).
// Will create the map if it is nil or a different size than pops slice,
// but otherwise needs to be updated manually.
func (nt *NetworkStru) PopByName(name string) *Pop {
	if nt.PopMap == nil || len(nt.PopMap) != len(nt.Pops) {
		nt.MakePopMap()
	}
	return nt.PopMap[name]
}

// PopByNameTry returns a population by looking it up by name -- returns error
// if not found
func (nt *NetworkStru) PopByNameTry(name string) (*Pop, error) {
	pl := nt.PopByName(name)
	if pl == nil {
		return nil, fmt.Errorf("Pop named: %v not found in Network: %v", name, nt.Nm)
	}
	return pl, nil
}

// MakePopMap updates population map based on current populations
func (nt *NetworkStru) MakePopMap() {
	nt.PopMap = make(map[string]*Pop, len(nt.Pops))
	for _, pl := range nt.Pops {
		nt.PopMap[pl.Nm] = pl
	}
}

// AddPop adds a new population with given name, type, size and parameters.
// Returns error if the name is already in use.
func (nt *NetworkStru) AddPop(name string, typ PopTypes, n int, pp PopParams) (*Pop, error) {
	if nt.PopByName(name) != nil {
		return nil, fmt.Errorf("Pop named: %v already exists in Network: %v", name, nt.Nm)
	}
	pl := &Pop{Nm: name, Typ: typ, N: n, Params: pp, Idx: len(nt.Pops)}
	nt.Pops = append(nt.Pops, pl)
	nt.MakePopMap()
	return pl, nil
}

// ConnectPops establishes a projection from send to recv,
// adding to the recv and send projection lists on each side of the connection.
// Does not yet allocate the gating variables -- that requires Build.
func (nt *NetworkStru) ConnectPops(send, recv *Pop, typ PrjnTypes, pp PrjnParams) *Prjn {
	pj := &Prjn{Nm: send.Nm + "->" + recv.Nm, Typ: typ, Send: send, Recv: recv, Params: pp, Idx: len(nt.Prjns)}
	recv.RecvPrjns = append(recv.RecvPrjns, pj)
	send.SendPrjns = append(send.SendPrjns, pj)
	nt.Prjns = append(nt.Prjns, pj)
	return pj
}

// ConnectPopNames establishes a projection between two populations, referenced by name.
// Returns error if not successful.
func (nt *NetworkStru) ConnectPopNames(send, recv string, typ PrjnTypes, pp PrjnParams) (*Prjn, error) {
	rpl, err := nt.PopByNameTry(recv)
	if err != nil {
		return nil, err
	}
	spl, err := nt.PopByNameTry(send)
	if err != nil {
		return nil, err
	}
	return nt.ConnectPops(spl, rpl, typ, pp), nil
}

// PrjnByName returns the projection Send->Recv, nil if not found
func (nt *NetworkStru) PrjnByName(name string) *Prjn {
	for _, pj := range nt.Prjns {
		if pj.Nm == name {
			return pj
		}
	}
	return nil
}

// BuildStru allocates the populations and projections for nsteps integration steps,
// and allocates the threads
func (nt *NetworkStru) BuildStru(nsteps int, record bool, nthr int) error {
	nt.StopThreads() // any existing..
	for pi, pl := range nt.Pops {
		pl.Idx = pi
		if err := pl.Build(nsteps); err != nil {
			return err
		}
	}
	for pi, pj := range nt.Prjns {
		pj.Idx = pi
		if err := pj.Build(nsteps, record); err != nil {
			return err
		}
	}
	nt.BuildThreads(nthr)
	return nil
}

// BuildThreads sets the number of threads and allocates the per-thread timers
func (nt *NetworkStru) BuildThreads(nthr int) {
	if nthr < 1 {
		nthr = 1
	}
	nt.NThreads = nthr
	nt.ThrTimes = make([]timer.Time, nt.NThreads)
	nt.FunTimes = make(map[string]*timer.Time)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// StartThreads starts up the computation threads, which monitor the channels for work.
// Does nothing for a single thread, or if the threads are already running.
func (nt *NetworkStru) StartThreads() {
	if nt.NThreads <= 1 || nt.ThrChans != nil {
		return
	}
	nt.ThrChans = make([]FunChan, nt.NThreads)
	for th := 0; th < nt.NThreads; th++ {
		nt.ThrChans[th] = make(FunChan)
		go nt.ThrWorker(th, nt.ThrChans[th]) // start the worker thread for this channel
	}
}

// StopThreads stops the computation threads
func (nt *NetworkStru) StopThreads() {
	for th := range nt.ThrChans {
		close(nt.ThrChans[th])
	}
	nt.ThrChans = nil
}

// ThrWorker is the worker function run by the worker threads, until ch is closed
func (nt *NetworkStru) ThrWorker(th int, ch FunChan) {
	for fun := range ch {
		nt.ThrTimes[th].Start()
		fun(th)
		nt.ThrTimes[th].Stop()
		nt.WaitGp.Done()
	}
}

// ThrFun calls fun(i) for i in [0, n), spread round-robin across the worker
// threads if they are running, and otherwise iterates in the current thread.
// Each call must only write memory that is disjoint from every other call.
func (nt *NetworkStru) ThrFun(n int, fun func(i int), funame string) {
	nt.FunTimerStart(funame)
	if nt.ThrChans == nil || n <= 1 {
		for i := 0; i < n; i++ {
			fun(i)
		}
	} else {
		nthr := nt.NThreads
		for th := 0; th < nthr; th++ {
			nt.WaitGp.Add(1)
			nt.ThrChans[th] <- func(th int) {
				for i := th; i < n; i += nthr {
					fun(i)
				}
			}
		}
		nt.WaitGp.Wait()
	}
	nt.FunTimerStop(funame)
}

// ThrPopFun calls function on each population, threaded if running
func (nt *NetworkStru) ThrPopFun(fun func(pl *Pop), funame string) {
	nt.ThrFun(len(nt.Pops), func(i int) { fun(nt.Pops[i]) }, funame)
}

// ThrPrjnFun calls function on each projection, threaded if running
func (nt *NetworkStru) ThrPrjnFun(fun func(pj *Prjn), funame string) {
	nt.ThrFun(len(nt.Prjns), func(i int) { fun(nt.Prjns[i]) }, funame)
}

// TimerReport reports the amount of time spent in each function, and in each thread
func (nt *NetworkStru) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", nt.Nm, nt.NThreads)
	fmt.Fprintf(&b, "\tFunction Name\tTotal Secs\tPct\n")
	nfn := len(nt.FunTimes)
	fnms := make([]string, 0, nfn)
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.StringSlice(fnms).Sort()
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Fprintf(&b, "\tTotal   \t%6.4g\n", tot)

	if nt.NThreads <= 1 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tTotal Secs\tPct\n")
	pcts = make([]float64, nt.NThreads)
	tot = 0.0
	for th := 0; th < nt.NThreads; th++ {
		pcts[th] = nt.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < nt.NThreads; th++ {
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", th, pcts[th], 100*(pcts[th]/tot))
	}
	return b.String()
}

// ThrTimerReset resets the per-thread and per-function timers
func (nt *NetworkStru) ThrTimerReset() {
	for th := range nt.ThrTimes {
		nt.ThrTimes[th].Reset()
	}
	for _, ft := range nt.FunTimes {
		ft.Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *NetworkStru) FunTimerStart(fun string) {
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *NetworkStru) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
