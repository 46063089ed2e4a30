// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"fmt"

	"github.com/emer/etable/v2/etensor"
	"github.com/goki/mat32"
)

// Neuron is one competing unit, holding one weight per input.  The inputs
// and the WeightHolder are owned by the Network and passed in to each
// phase method, so a neuron can only take part in a phase when handed
// access to the shared state for that phase.
type Neuron struct {
	Nm    string    `desc:"name of the neuron"`
	Index int       `desc:"index of this neuron in the network"`
	LRate float32   `desc:"learning rate"`
	Wts   []float32 `desc:"weights, one per input, aligned by input index -- always >= 0 after learning"`
	Act   float32   `desc:"current activation (em) computed in the last prediction phase"`
}

// Name returns the name of the neuron
func (nrn *Neuron) Name() string {
	return nrn.Nm
}

func (nrn *Neuron) String() string {
	return fmt.Sprintf("Neuron: %s\tAct: %g\tNWts: %d", nrn.Nm, nrn.Act, len(nrn.Wts))
}

// WtSum returns the weight mass of this neuron: the sum of its weights
func (nrn *Neuron) WtSum() float32 {
	sum := float32(0)
	for _, wt := range nrn.Wts {
		sum += wt
	}
	return sum
}

// ComputeAct returns the activation for the current input measures: the
// weighted sum of measures normalized by the weight mass according to norm.
// Returns 0 if the weight mass is 0.  Does not modify any state.
func (nrn *Neuron) ComputeAct(inputs []Input, norm NormPolicy) float32 {
	sumWt := float32(0)
	sumWtMeas := float32(0)
	for i, wt := range nrn.Wts {
		sumWt += wt
		sumWtMeas += wt * inputs[i].Measure
	}
	if sumWt == 0 {
		return 0
	}
	if norm == SqrtSumNorm {
		return sumWtMeas / mat32.Sqrt(sumWt)
	}
	return sumWtMeas / sumWt
}

// Predict runs the prediction phase for this neuron: computes and stores
// the activation, adds it into the shared holder total, and adds
// Act * Wt into each input's accumulated prediction.
func (nrn *Neuron) Predict(inputs []Input, hold *WeightHolder, norm NormPolicy) {
	nrn.Act = nrn.ComputeAct(inputs, norm)
	hold.Incr(nrn.Act)
	for i, wt := range nrn.Wts {
		inputs[i].AccumPred(nrn.Act * wt)
	}
}

// AdjustSize returns the scale of this neuron's weight changes: its share of
// the total activation times the learning rate.  Returns 0 if the holder
// total is degenerate.
func (nrn *Neuron) AdjustSize(hold *WeightHolder) float32 {
	if hold.IsDegenerate() {
		return 0
	}
	return (nrn.Act / hold.Total()) * nrn.LRate
}

// Learn runs the learning phase for this neuron.  Each weight moves against
// its input's cached reconstruction error, scaled by AdjustSize, and is then
// clamped at 0.  All inputs must have cached their errors.
func (nrn *Neuron) Learn(inputs []Input, hold *WeightHolder) {
	adj := nrn.AdjustSize(hold)
	for i, wt := range nrn.Wts {
		wt += -1 * inputs[i].Err * adj
		nrn.Wts[i] = mat32.Max(wt, 0)
	}
}

// ExportWeights returns the weights reshaped into a side x side grid,
// row-major (Y, X), matching the pixel layout of the inputs.
func (nrn *Neuron) ExportWeights(side int) *etensor.Float32 {
	tsr := etensor.NewFloat32([]int{side, side}, nil, []string{"Y", "X"})
	copy(tsr.Values, nrn.Wts)
	return tsr
}
