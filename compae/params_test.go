// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"testing"

	"github.com/emer/emergent/v2/erand"
	"github.com/goki/mat32"
)

func TestParamsValidate(t *testing.T) {
	pr := Params{}
	pr.Defaults()
	pr.Update()
	if err := pr.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
	bad := []func(pr *Params){
		func(pr *Params) { pr.LRate = 0 },
		func(pr *Params) { pr.WtInit.Min = 0 },
		func(pr *Params) { pr.WtInit.SetRange(0.1, 0.1) },
		func(pr *Params) { pr.WtInit.SetRange(0.1, 0.01) },
		func(pr *Params) { pr.Norm = NormPolicyN },
		func(pr *Params) { pr.Pred = -1 },
		func(pr *Params) { pr.Reset = ResetPolicyN },
	}
	for i, fun := range bad {
		pr.Defaults()
		fun(&pr)
		if err := pr.Validate(); err == nil {
			t.Errorf("case %d: expected error for %+v", i, pr)
		}
	}
}

func TestWtInitGen(t *testing.T) {
	wp := WtInitParams{}
	wp.Defaults()
	if wp.Dist != erand.Uniform || wp.Min != 0.001 || mat32.Abs(wp.Max()-0.1) > difTol {
		t.Errorf("defaults: %+v, Max: %v", wp, wp.Max())
	}
	rnd := erand.NewSysRand(1)
	for i := 0; i < 1000; i++ {
		wt := wp.Gen(rnd)
		if wt < wp.Min || wt > wp.Max() {
			t.Fatalf("wt %v out of range [%v, %v]", wt, wp.Min, wp.Max())
		}
	}
	for i := 0; i < 100; i++ {
		if wt := wp.Gen(nil); wt < wp.Min || wt > wp.Max() {
			t.Fatalf("global source: wt %v out of range [%v, %v]", wt, wp.Min, wp.Max())
		}
	}

	// values below Min are raised to it
	wp.Mean = 0
	wp.Var = 0.5
	for i := 0; i < 100; i++ {
		if wt := wp.Gen(rnd); wt < wp.Min {
			t.Fatalf("wt %v < Min %v", wt, wp.Min)
		}
	}

	// same seed, same weights
	wp.Defaults()
	r1 := erand.NewSysRand(7)
	r2 := erand.NewSysRand(7)
	for i := 0; i < 10; i++ {
		if w1, w2 := wp.Gen(r1), wp.Gen(r2); w1 != w2 {
			t.Fatalf("seeded sources differ: %v != %v", w1, w2)
		}
	}
}


func TestPolicyStrings(t *testing.T) {
	var np NormPolicy
	if err := np.FromString("SumNorm"); err != nil || np != SumNorm {
		t.Errorf("FromString SumNorm: %v, %v", np, err)
	}
	if err := np.FromString("SqrtSumNorm"); err != nil || np != SqrtSumNorm {
		t.Errorf("FromString SqrtSumNorm: %v, %v", np, err)
	}
	if err := np.FromString("Bogus"); err == nil {
		t.Errorf("FromString Bogus should fail")
	}
	var pp PredPolicy
	if err := pp.FromString("KeepPred"); err != nil || pp != KeepPred {
		t.Errorf("FromString KeepPred: %v, %v", pp, err)
	}
	var rp ResetPolicy
	if err := rp.FromString("OriginPixelReset"); err != nil || rp != OriginPixelReset {
		t.Errorf("FromString OriginPixelReset: %v, %v", rp, err)
	}
	if s := ExplicitReset.String(); s != "ExplicitReset" {
		t.Errorf("String: %q", s)
	}
}
