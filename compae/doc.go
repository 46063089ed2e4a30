// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package compae implements a competitive auto-encoder: a single layer of
competing neurons, each holding one non-negative weight per input pixel,
that jointly learn to reconstruct the input image without labels.

Each training step on one image runs three sweeps, strictly in order, with
a barrier between them:

* Predict: every neuron computes its activation (em), the weighted sum of
the pixel measures normalized by its own weight mass (see NormPolicy), adds
it into the shared WeightHolder total, and adds Act * Wt into the
accumulated prediction of every input.

* CacheErr: every input computes its reconstruction, the accumulated
prediction divided by the total activation, and caches the signed error
Recon - Measure.

* Learn: every neuron moves each weight against its input's error, scaled
by the neuron's share of the total activation (Act / Total) times the
learning rate, and clamps the weight at 0.

The Network owns the neurons, the inputs and the WeightHolder, and hands
them to the neurons for the duration of each phase.  Each phase can be
split across goroutines (NThreads) with results identical to the
single-threaded sweep.
*/
package compae
