// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package compae is the overall repository for the competitive auto-encoder:
a single layer of competing neurons that learn, without labels, a weighted
reconstruction of input images.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* compae: the core algorithm -- the WeightHolder, Input, Neuron and Network
types and the three phase-barriered sweeps (predict, cache error, learn) of
each training step, plus weight file saving and loading.

* mnist: loads the MNIST digit images and labels, normalized to [0,1].

* train: the training harness that presents images to a network for a number
of epochs, and the winner-take-all label accuracy metric.

* examples: these compile into runnable programs.  examples/mnist trains on
the MNIST digits and saves the learned weights.
*/
package compae
