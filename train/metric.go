// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package train

import (
	"fmt"

	"github.com/emer/compae/compae"
	"github.com/emer/empi/v2/mpi"
	"gonum.org/v1/gonum/mat"
)

// Metric measures winner-take-all label accuracy of a trained learner.
// Each neuron is assigned the label it most often wins for on the
// assignment set, and accuracy is the fraction of images in the test set
// whose winning neuron's assigned label is the true label.
type Metric struct {
	NNeurons int        `desc:"number of neurons"`
	NLabels  int        `desc:"number of distinct labels"`
	Counts   *mat.Dense `desc:"NNeurons x NLabels count of images on which each neuron won, by label"`
	Assign   []int      `desc:"label assigned to each neuron -- -1 if it never won"`
}

// NewMetric returns a new metric for given number of neurons and labels,
// both of which must be at least 1
func NewMetric(nNeurons, nLabels int) (*Metric, error) {
	if nNeurons < 1 || nLabels < 1 {
		return nil, fmt.Errorf("train.Metric: need at least 1 neuron and 1 label, got %d neurons, %d labels", nNeurons, nLabels)
	}
	mt := &Metric{NNeurons: nNeurons, NLabels: nLabels}
	mt.Init()
	return mt, nil
}

// Init resets the counts and assignments
func (mt *Metric) Init() {
	mt.Counts = mat.NewDense(mt.NNeurons, mt.NLabels, nil)
	mt.Assign = make([]int, mt.NNeurons)
	for ni := range mt.Assign {
		mt.Assign[ni] = -1
	}
}

// Winner returns the index of the most active neuron for given image
func Winner(net Learner, data Data, i int) (int, error) {
	if err := LoadImage(net, data.Image(i)); err != nil {
		return -1, err
	}
	am := compae.ActStats(net.Infer())
	return int(am.MaxIdx), nil
}

// CountWins adds the winning neuron of every image in data to the counts
func (mt *Metric) CountWins(net Learner, data Data) error {
	if net.NNeurons() != mt.NNeurons {
		return fmt.Errorf("train.Metric: learner has %d neurons, metric has %d", net.NNeurons(), mt.NNeurons)
	}
	for i := 0; i < data.Len(); i++ {
		win, err := Winner(net, data, i)
		if err != nil {
			return fmt.Errorf("%s image %d: %w", data.Name(), i, err)
		}
		lbl := data.Label(i)
		if lbl < 0 || lbl >= mt.NLabels {
			return fmt.Errorf("%s image %d: label %d out of range [0, %d)", data.Name(), i, lbl, mt.NLabels)
		}
		mt.Counts.Set(win, lbl, mt.Counts.At(win, lbl)+1)
	}
	return nil
}

// AssignLabels assigns each neuron the label it won most often for,
// lowest label on ties, -1 if it never won
func (mt *Metric) AssignLabels() {
	for ni := 0; ni < mt.NNeurons; ni++ {
		best := -1
		bestN := 0.0
		for li := 0; li < mt.NLabels; li++ {
			if n := mt.Counts.At(ni, li); n > bestN {
				best = li
				bestN = n
			}
		}
		mt.Assign[ni] = best
	}
}

// Accuracy returns the fraction of images in data for which the assigned
// label of the winning neuron is the true label
func (mt *Metric) Accuracy(net Learner, data Data) (float64, error) {
	n := data.Len()
	if n == 0 {
		return 0, nil
	}
	correct := 0
	for i := 0; i < n; i++ {
		win, err := Winner(net, data, i)
		if err != nil {
			return 0, fmt.Errorf("%s image %d: %w", data.Name(), i, err)
		}
		if mt.Assign[win] == data.Label(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// Compute runs the full metric: counts wins on the assignment set, assigns
// labels, and returns the accuracy on the test set
func (mt *Metric) Compute(net Learner, assign, test Data) (float64, error) {
	mt.Init()
	if err := mt.CountWins(net, assign); err != nil {
		return 0, err
	}
	mt.AssignLabels()
	acc, err := mt.Accuracy(net, test)
	if err != nil {
		return 0, err
	}
	mpi.Printf("Assigned labels: %v\tAccuracy on %s: %.4f\n", mt.Assign, test.Name(), acc)
	return acc, nil
}
