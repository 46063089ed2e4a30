// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

// WeightHolder accumulates the total activation produced by all neurons
// during the current prediction phase.  It is the normalizer for every
// input's reconstruction and for every neuron's share of the learning signal.
// It must be cleared once per image, before that image's prediction phase.
type WeightHolder struct {
	total float32
}

// Clear resets the total to 0
func (wh *WeightHolder) Clear() {
	wh.total = 0
}

// Incr adds given activation amount to the total
func (wh *WeightHolder) Incr(amt float32) {
	wh.total += amt
}

// Total returns the current total.  A zero total is a degenerate normalizer
// and callers must not divide by it.
func (wh *WeightHolder) Total() float32 {
	return wh.total
}

// IsDegenerate returns true if the total cannot be used as a normalizer
func (wh *WeightHolder) IsDegenerate() bool {
	return wh.total == 0
}
