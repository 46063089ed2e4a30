// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

// Input holds the state for one input pixel: the measured (true) intensity
// for the current image, the running sum of weighted predictions contributed
// by all neurons, and the cached signed reconstruction error.
type Input struct {
	Measure float32 `desc:"measured intensity of this pixel for the current image, normalized to [0,1]"`
	Pred    float32 `desc:"accumulated weighted prediction, summed over all neurons: sum of Act * Wt"`
	Err     float32 `desc:"cached signed reconstruction error: Recon - Measure"`
}

// LoadMeasure sets the true intensity for the current image
func (in *Input) LoadMeasure(val float32) {
	in.Measure = val
}

// AccumPred adds one neuron's weighted activation to the running prediction.
// Called exactly once per neuron per prediction phase.
func (in *Input) AccumPred(wtAct float32) {
	in.Pred += wtAct
}

// ClearPred resets the running prediction to 0
func (in *Input) ClearPred() {
	in.Pred = 0
}

// Recon returns the reconstruction of this input: the accumulated prediction
// normalized by the total activation in the holder.  Returns 0 if the
// holder total is degenerate.
func (in *Input) Recon(hold *WeightHolder) float32 {
	if hold.IsDegenerate() {
		return 0
	}
	return in.Pred / hold.Total()
}

// CacheErr computes and stores the signed reconstruction error.
// Must run after every neuron has finished its prediction phase and before
// any neuron starts its learning phase.
func (in *Input) CacheErr(hold *WeightHolder) {
	in.Err = in.Recon(hold) - in.Measure
}
