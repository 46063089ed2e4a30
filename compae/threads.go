// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/emer/emergent/v2/timer"
	"github.com/goki/ki/ints"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// SetNThreads sets the number of goroutines each phase is split across.
// 0 means use GOMAXPROCS.
func (nt *Network) SetNThreads(nthr int) {
	if nthr <= 0 {
		nthr = runtime.GOMAXPROCS(0)
	}
	nt.NThreads = ints.MaxInt(nthr, 1)
}

// ThrFun calls fun over contiguous chunks of [0, n), using one goroutine per
// chunk if NThreads > 1, and otherwise calling fun(0, n) in the current
// goroutine.  Returns only after every chunk is done, so each call is a
// barrier: nothing in the next call starts before this one finishes.
func (nt *Network) ThrFun(n int, fun func(st, ed int), funame string) {
	nt.FunTimerStart(funame)
	if nt.NThreads <= 1 || n < 2 {
		fun(0, n)
	} else {
		nthr := ints.MinInt(nt.NThreads, n)
		chunk := (n + nthr - 1) / nthr
		for st := 0; st < n; st += chunk {
			ed := ints.MinInt(st+chunk, n)
			nt.WaitGp.Add(1)
			go func(st, ed int) {
				defer nt.WaitGp.Done()
				fun(st, ed)
			}(st, ed)
		}
		nt.WaitGp.Wait()
	}
	nt.FunTimerStop(funame)
}

// TimerReport reports the amount of time spent in each phase
func (nt *Network) TimerReport() {
	fmt.Printf("TimerReport: %v, NThreads: %v\n", nt.Nm, nt.NThreads)
	fmt.Printf("\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(nt.FunTimes))
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Printf("\t%13s \t%7.3f\n", "Total", tot)
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
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
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
