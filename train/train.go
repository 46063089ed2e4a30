// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package train runs the training and evaluation of a competitive auto-encoder
over a labeled image set: it presents each image pixel by pixel, runs one
adjustment per image for a number of epochs, and measures how well the
winning neurons predict the labels.  Labels are never seen by the learner.
*/
package train

import (
	"errors"
	"fmt"

	"github.com/emer/compae/compae"
	"github.com/emer/emergent/v2/timer"
	"github.com/emer/empi/v2/mpi"
	"github.com/emer/etable/v2/etensor"
)

// Learner is the capability the harness needs from a network
type Learner interface {
	// BeginImage starts a new image
	BeginImage()

	// LoadPixel sets the measure of pixel (x, y) of the current image
	LoadPixel(x, y int, val float32) error

	// EndImage checks that the image is completely loaded
	EndImage() error

	// PerformAdjustment runs one training step on the current image
	PerformAdjustment() error

	// Infer returns the activation of every neuron for the current image
	// without changing any state
	Infer() []float32

	// NNeurons returns the number of neurons
	NNeurons() int
}

// Compile-time check that the network implements Learner
var _ Learner = (*compae.Network)(nil)

// Data is a set of labeled images
type Data interface {
	// Name returns the name of the set
	Name() string

	// Len returns the number of images
	Len() int

	// Image returns image i as a Side x Side (Y, X) tensor
	Image(i int) *etensor.Float32

	// Label returns the label of image i
	Label(i int) int
}

// LoadImage presents given image to the learner: BeginImage, every pixel in
// row-major order starting at (0,0), then EndImage.
func LoadImage(net Learner, img *etensor.Float32) error {
	net.BeginImage()
	ny := img.Dim(0)
	nx := img.Dim(1)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			if err := net.LoadPixel(x, y, img.Values[y*nx+x]); err != nil {
				return err
			}
		}
	}
	return net.EndImage()
}

// Trainer runs a learner over the training set for a number of epochs,
// stepping through the images with an Env
type Trainer struct {
	Net         Learner    `desc:"the network being trained"`
	Train       Data       `desc:"training images"`
	Env         Env        `desc:"steps through the training images in order"`
	NEpochs     int        `desc:"number of epochs to train"`
	LogInterval int        `desc:"log progress every this many images -- 0 = only log epochs"`
	Epoch       int        `inactive:"+" desc:"number of completed epochs"`
	NDegen      int        `inactive:"+" desc:"number of images with a degenerate normalizer, over all epochs"`
	EpcTimer    timer.Time `view:"-" desc:"timer for each epoch"`
}

// Init configures the environment on the training images and resets the counts
func (tr *Trainer) Init() error {
	tr.Env.Config(tr.Train)
	if err := tr.Env.Validate(); err != nil {
		return err
	}
	tr.Env.Init()
	tr.Epoch = 0
	tr.NDegen = 0
	return nil
}

// TrainEpoch runs one adjustment on every training image, in order.
// Degenerate normalizer steps are counted and skipped over; any other
// error stops the epoch.
func (tr *Trainer) TrainEpoch() error {
	if tr.Env.Data == nil {
		if err := tr.Init(); err != nil {
			return err
		}
	}
	ev := &tr.Env
	tr.EpcTimer.ResetStart()
	n := ev.Data.Len()
	for i := 0; i < n; i++ {
		ev.Step()
		if err := LoadImage(tr.Net, ev.Image); err != nil {
			return fmt.Errorf("epoch %d image %d: %w", tr.Epoch, ev.Trial.Cur, err)
		}
		err := tr.Net.PerformAdjustment()
		switch {
		case errors.Is(err, compae.ErrDegenerateNorm):
			tr.NDegen++
		case err != nil:
			return fmt.Errorf("epoch %d image %d: %w", tr.Epoch, ev.Trial.Cur, err)
		}
		if tr.LogInterval > 0 && (i+1)%tr.LogInterval == 0 {
			mpi.Printf("Epoch: %d\tImage: %d / %d\n", tr.Epoch, i+1, n)
		}
	}
	tr.EpcTimer.Stop()
	mpi.Printf("Epoch: %d done\tImages: %d\tDegenerate: %d\tSecs: %.3f\n", tr.Epoch, n, tr.NDegen, tr.EpcTimer.TotalSecs())
	tr.Epoch++
	return nil
}

// Run initializes and trains for NEpochs epochs, stopping at the first error
func (tr *Trainer) Run() error {
	if err := tr.Init(); err != nil {
		return err
	}
	for tr.Epoch < tr.NEpochs {
		if err := tr.TrainEpoch(); err != nil {
			return err
		}
	}
	return nil
}
