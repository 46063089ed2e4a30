// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"fmt"

	"github.com/emer/emergent/v2/erand"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// NormPolicy determines how a neuron's weighted sum of input measures is
// normalized by its own weight mass to produce the activation.
type NormPolicy int32

//go:generate stringer -type=NormPolicy

var KiT_NormPolicy = kit.Enums.AddEnum(NormPolicyN, kit.NotBitFlag, nil)

func (ev NormPolicy) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NormPolicy) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The activation normalization policies
const (
	// SumNorm divides the weighted sum by the raw sum of weights
	SumNorm NormPolicy = iota

	// SqrtSumNorm divides the weighted sum by the square root of the sum of weights
	SqrtSumNorm

	NormPolicyN
)

// PredPolicy determines when the per-input accumulated prediction is cleared.
type PredPolicy int32

//go:generate stringer -type=PredPolicy

var KiT_PredPolicy = kit.Enums.AddEnum(PredPolicyN, kit.NotBitFlag, nil)

func (ev PredPolicy) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PredPolicy) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The prediction clearing policies
const (
	// ClearPred zeroes the accumulated prediction of every input at the start of each image
	ClearPred PredPolicy = iota

	// KeepPred never clears the accumulated prediction once it has been set,
	// so it integrates over all images seen so far
	KeepPred

	PredPolicyN
)

// ResetPolicy determines what triggers clearing of the shared WeightHolder.
type ResetPolicy int32

//go:generate stringer -type=ResetPolicy

var KiT_ResetPolicy = kit.Enums.AddEnum(ResetPolicyN, kit.NotBitFlag, nil)

func (ev ResetPolicy) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ResetPolicy) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The holder reset policies
const (
	// ExplicitReset clears the holder only in BeginImage
	ExplicitReset ResetPolicy = iota

	// OriginPixelReset clears the holder whenever pixel (0,0) is loaded,
	// so pixel (0,0) must be the first pixel loaded for every image
	OriginPixelReset

	ResetPolicyN
)

// WtInitParams are weight initialization parameters: the random
// distribution parameters, plus a strictly positive floor on the generated
// values so that no neuron starts with a zero weight mass.
type WtInitParams struct {
	erand.RndParams
	Min float32 `def:"0.001" min:"0" desc:"minimum initial weight -- generated values below this are set to it, so it must be > 0"`
}

func (wp *WtInitParams) Defaults() {
	wp.Dist = erand.Uniform
	wp.SetRange(0.001, 0.1)
}

// SetRange sets a uniform distribution over [lo, hi], with Min = lo
func (wp *WtInitParams) SetRange(lo, hi float32) {
	wp.Dist = erand.Uniform
	wp.Mean = 0.5 * (float64(lo) + float64(hi))
	wp.Var = 0.5 * (float64(hi) - float64(lo))
	wp.Min = lo
}

// Max returns the upper bound of the initial weights under a uniform distribution
func (wp *WtInitParams) Max() float32 {
	return float32(wp.Mean + wp.Var)
}

// Gen returns a new random weight, using the given source if non-nil,
// and the global source otherwise.
func (wp *WtInitParams) Gen(rnd erand.Rand) float32 {
	var wt float32
	if rnd != nil {
		wt = float32(wp.RndParams.Gen(-1, rnd))
	} else {
		wt = float32(wp.RndParams.Gen(-1))
	}
	return mat32.Max(wt, wp.Min)
}

// Params are the network-wide learning parameters.
type Params struct {
	LRate  float32      `def:"0.001" min:"0" desc:"learning rate -- scales every weight adjustment"`
	Norm   NormPolicy   `def:"SqrtSumNorm" desc:"how activations are normalized by each neuron's weight mass"`
	Pred   PredPolicy   `def:"ClearPred" desc:"when the per-input accumulated predictions are cleared"`
	Reset  ResetPolicy  `def:"ExplicitReset" desc:"what triggers clearing of the shared activation total"`
	WtInit WtInitParams `view:"inline" desc:"initial weight sampling"`
}

func (pr *Params) Defaults() {
	pr.LRate = 0.001
	pr.Norm = SqrtSumNorm
	pr.Pred = ClearPred
	pr.Reset = ExplicitReset
	pr.WtInit.Defaults()
}

// Update must be called after any changes to parameters
func (pr *Params) Update() {
}

// Validate returns an error if any of the parameters are out of range
func (pr *Params) Validate() error {
	switch {
	case pr.LRate <= 0:
		return fmt.Errorf("compae: LRate must be > 0, got %g", pr.LRate)
	case pr.WtInit.Min <= 0:
		return fmt.Errorf("compae: WtInit.Min must be > 0, got %g", pr.WtInit.Min)
	case pr.WtInit.Var < 0:
		return fmt.Errorf("compae: WtInit.Var must be >= 0, got %g", pr.WtInit.Var)
	case pr.WtInit.Dist == erand.Uniform && pr.WtInit.Max() <= pr.WtInit.Min:
		return fmt.Errorf("compae: WtInit upper bound (%g) must be > WtInit.Min (%g)", pr.WtInit.Max(), pr.WtInit.Min)
	case pr.Norm < 0 || pr.Norm >= NormPolicyN:
		return fmt.Errorf("compae: invalid Norm policy %d", pr.Norm)
	case pr.Pred < 0 || pr.Pred >= PredPolicyN:
		return fmt.Errorf("compae: invalid Pred policy %d", pr.Pred)
	case pr.Reset < 0 || pr.Reset >= ResetPolicyN:
		return fmt.Errorf("compae: invalid Reset policy %d", pr.Reset)
	}
	return nil
}
