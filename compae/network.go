// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/emergent/v2/timer"
	"github.com/emer/etable/v2/minmax"
	"github.com/goki/ki/ints"
)

var (
	// ErrPixelRange is returned when a pixel outside of [0, Side) is loaded
	ErrPixelRange = errors.New("compae: pixel out of range")

	// ErrIncompleteImage is returned when an adjustment is requested without
	// exactly one load of every pixel since the start of the image
	ErrIncompleteImage = errors.New("compae: image not completely loaded")

	// ErrDuplicatePixel is returned when a pixel is loaded a second time
	// within the same image
	ErrDuplicatePixel = errors.New("compae: pixel already loaded for this image")

	// ErrDegenerateNorm is returned when the total activation was 0 during an
	// adjustment.  The adjustment still completes, with 0 reconstructions and
	// no weight changes.
	ErrDegenerateNorm = errors.New("compae: degenerate normalizer, total activation is 0")

	// ErrShape is returned when loaded weights do not match the network shape
	ErrShape = errors.New("compae: weights shape mismatch")
)

// Network is a single layer of fully-connected competing neurons over a
// Side x Side input image.  It owns the neurons, the inputs and the shared
// WeightHolder, and runs the three phase-barriered sweeps of one training
// step: every neuron predicts, then every input caches its error, then every
// neuron learns.
type Network struct {
	Nm       string            `desc:"name of the network"`
	Params   Params            `view:"add-fields" desc:"learning parameters"`
	Side     int               `inactive:"+" desc:"width and height of the input image -- number of inputs is Side * Side"`
	Neurons  []Neuron          `desc:"the competing neurons"`
	Inputs   []Input           `desc:"one input per pixel, row-major: index = y * Side + x"`
	Hold     WeightHolder      `desc:"total activation of all neurons in the current prediction phase"`
	Loaded   []bool            `view:"-" desc:"whether each pixel has been loaded for the current image, by input index"`
	NLoaded  int               `inactive:"+" desc:"number of distinct pixels loaded since the start of the current image"`
	NDegen   int               `inactive:"+" desc:"number of adjustments run with a degenerate normalizer"`
	MetaData map[string]string `desc:"misc metadata, saved with the weights"`

	NThreads int                    `desc:"number of goroutines to split each phase across -- results are identical for any number"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"barrier for threaded phases"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each phase"`
}

// NewNetwork returns a new network with nNeurons neurons over a side x side
// input image, with default parameters.  Weights are all 0 until InitWts.
func NewNetwork(name string, side, nNeurons int) *Network {
	nt := &Network{Nm: name}
	nt.Params.Defaults()
	nt.Build(side, nNeurons)
	return nt
}

// Build allocates the inputs and neurons.  The number of inputs is fixed here
// and never changes.  Negative sizes build an empty network, which Validate reports.
func (nt *Network) Build(side, nNeurons int) {
	nt.Side = side
	nin := ints.MaxInt(side, 0) * ints.MaxInt(side, 0)
	nt.Inputs = make([]Input, nin)
	nt.Loaded = make([]bool, nin)
	nt.Neurons = make([]Neuron, ints.MaxInt(nNeurons, 0))
	for ni := range nt.Neurons {
		nrn := &nt.Neurons[ni]
		nrn.Nm = strconv.Itoa(ni)
		nrn.Index = ni
		nrn.Wts = make([]float32, nin)
	}
	nt.Hold.Clear()
	nt.NLoaded = 0
	nt.NDegen = 0
	if nt.NThreads < 1 {
		nt.NThreads = 1
	}
	nt.FunTimes = make(map[string]*timer.Time)
	nt.UpdateParams()
}

// UpdateParams pushes the network parameters out to the neurons.
// Must be called after changing Params.
func (nt *Network) UpdateParams() {
	nt.Params.Update()
	for ni := range nt.Neurons {
		nt.Neurons[ni].LRate = nt.Params.LRate
	}
}

// Validate checks the shape and parameters of the network,
// returning an error if it cannot be run.
func (nt *Network) Validate() error {
	switch {
	case nt.Side < 1:
		return fmt.Errorf("compae: network %s: Side must be >= 1, got %d", nt.Nm, nt.Side)
	case len(nt.Neurons) < 1:
		return fmt.Errorf("compae: network %s: need at least 1 neuron", nt.Nm)
	case len(nt.Inputs) != nt.Side*nt.Side || len(nt.Loaded) != len(nt.Inputs):
		return fmt.Errorf("%w: network %s has %d inputs, Side %d -- need to Build", ErrShape, nt.Nm, len(nt.Inputs), nt.Side)
	}
	for ni := range nt.Neurons {
		if nw := len(nt.Neurons[ni].Wts); nw != len(nt.Inputs) {
			return fmt.Errorf("%w: neuron %s has %d weights, need %d", ErrShape, nt.Neurons[ni].Nm, nw, len(nt.Inputs))
		}
	}
	return nt.Params.Validate()
}

// Name returns the name of the network
func (nt *Network) Name() string {
	return nt.Nm
}

// NNeurons returns the number of neurons
func (nt *Network) NNeurons() int {
	return len(nt.Neurons)
}

// Neuron returns the neuron at given index, for reading
func (nt *Network) Neuron(idx int) *Neuron {
	return &nt.Neurons[idx]
}

// NInputs returns the number of inputs, Side * Side
func (nt *Network) NInputs() int {
	return len(nt.Inputs)
}

// InitWts initializes all weights by sampling from Params.WtInit using given
// random source (global source if nil).  Neurons are initialized in order, each
// neuron's weights in input order, so a seeded source gives identical networks.
func (nt *Network) InitWts(rnd erand.Rand) {
	nt.InitWtsFunc(func() float32 {
		return nt.Params.WtInit.Gen(rnd)
	})
}

// InitWtsFunc initializes all weights from given generator function, which
// must return strictly positive values.  Also resets all activity state.
func (nt *Network) InitWtsFunc(gen func() float32) {
	for ni := range nt.Neurons {
		nrn := &nt.Neurons[ni]
		for i := range nrn.Wts {
			nrn.Wts[i] = gen()
		}
		nrn.Act = 0
	}
	for i := range nt.Inputs {
		nt.Inputs[i] = Input{}
	}
	nt.Hold.Clear()
	nt.clearLoaded()
	nt.NDegen = 0
}

// clearLoaded marks every pixel as not yet loaded for the current image
func (nt *Network) clearLoaded() {
	for i := range nt.Loaded {
		nt.Loaded[i] = false
	}
	nt.NLoaded = 0
}

//////////////////////////////////////////////////////////////////////////////////////
//  Image loading

// BeginImage starts a new image: clears the holder total and the pixel load
// count, and, under ClearPred, every input's accumulated prediction.
func (nt *Network) BeginImage() {
	nt.Hold.Clear()
	nt.clearLoaded()
	if nt.Params.Pred == ClearPred {
		for i := range nt.Inputs {
			nt.Inputs[i].ClearPred()
		}
	}
}

// LoadPixel sets the measure of the input at pixel (x, y) for the current image.
// Each pixel can be loaded only once per image: a second load returns
// ErrDuplicatePixel and leaves the input unchanged.
// Under OriginPixelReset, loading (0,0) also starts a new image.
func (nt *Network) LoadPixel(x, y int, val float32) error {
	if x < 0 || x >= nt.Side || y < 0 || y >= nt.Side {
		return fmt.Errorf("%w: (%d, %d) with side %d", ErrPixelRange, x, y, nt.Side)
	}
	if nt.Params.Reset == OriginPixelReset && x == 0 && y == 0 {
		nt.Hold.Clear()
		nt.clearLoaded()
	}
	idx := y*nt.Side + x
	if nt.Loaded[idx] {
		return fmt.Errorf("%w: (%d, %d)", ErrDuplicatePixel, x, y)
	}
	in := &nt.Inputs[idx]
	in.LoadMeasure(val)
	if nt.Params.Pred == ClearPred {
		in.ClearPred()
	}
	nt.Loaded[idx] = true
	nt.NLoaded++
	return nil
}

// EndImage checks that every pixel has been loaded exactly once since the
// start of the image.
func (nt *Network) EndImage() error {
	if nt.NLoaded != len(nt.Inputs) {
		return fmt.Errorf("%w: %d of %d pixels loaded", ErrIncompleteImage, nt.NLoaded, len(nt.Inputs))
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Training step

// PerformAdjustment runs one full training step on the currently loaded image,
// as three strictly sequential sweeps: PredictPhase over all neurons,
// CacheErrPhase over all inputs, LearnPhase over all neurons.
// Returns ErrIncompleteImage without doing anything if the image is not fully
// loaded, and ErrDegenerateNorm (after completing the step) if the total
// activation was 0.
func (nt *Network) PerformAdjustment() error {
	if err := nt.EndImage(); err != nil {
		return err
	}
	nt.PredictPhase()
	degen := nt.Hold.IsDegenerate()
	nt.CacheErrPhase()
	nt.LearnPhase()
	if degen {
		nt.NDegen++
		return ErrDegenerateNorm
	}
	return nil
}

// PredictPhase runs the prediction phase of every neuron.  With multiple threads,
// activations are computed in parallel, and then the accumulation into each input
// is done in parallel over inputs, summing neurons in index order, which gives
// exactly the same result as the sequential sweep.
func (nt *Network) PredictPhase() {
	norm := nt.Params.Norm
	if nt.NThreads <= 1 {
		nt.FunTimerStart("Predict")
		for ni := range nt.Neurons {
			nt.Neurons[ni].Predict(nt.Inputs, &nt.Hold, norm)
		}
		nt.FunTimerStop("Predict")
		return
	}
	nt.ThrFun(len(nt.Neurons), func(st, ed int) {
		for ni := st; ni < ed; ni++ {
			nrn := &nt.Neurons[ni]
			nrn.Act = nrn.ComputeAct(nt.Inputs, norm)
		}
	}, "Predict")
	for ni := range nt.Neurons {
		nt.Hold.Incr(nt.Neurons[ni].Act)
	}
	nt.ThrFun(len(nt.Inputs), func(st, ed int) {
		for ni := range nt.Neurons {
			nrn := &nt.Neurons[ni]
			for i := st; i < ed; i++ {
				nt.Inputs[i].AccumPred(nrn.Act * nrn.Wts[i])
			}
		}
	}, "AccumPred")
}

// CacheErrPhase caches the reconstruction error of every input
func (nt *Network) CacheErrPhase() {
	nt.ThrFun(len(nt.Inputs), func(st, ed int) {
		for i := st; i < ed; i++ {
			nt.Inputs[i].CacheErr(&nt.Hold)
		}
	}, "CacheErr")
}

// LearnPhase runs the learning phase of every neuron
func (nt *Network) LearnPhase() {
	nt.ThrFun(len(nt.Neurons), func(st, ed int) {
		for ni := st; ni < ed; ni++ {
			nt.Neurons[ni].Learn(nt.Inputs, &nt.Hold)
		}
	}, "Learn")
}

//////////////////////////////////////////////////////////////////////////////////////
//  Inference

// Infer returns the activation of every neuron for the currently loaded image,
// without changing any network state.
func (nt *Network) Infer() []float32 {
	acts := make([]float32, len(nt.Neurons))
	nt.ThrFun(len(nt.Neurons), func(st, ed int) {
		for ni := st; ni < ed; ni++ {
			acts[ni] = nt.Neurons[ni].ComputeAct(nt.Inputs, nt.Params.Norm)
		}
	}, "Infer")
	return acts
}

// ActStats returns the average and max of the given activations, with
// MaxIdx the index of the winning neuron.
func ActStats(acts []float32) minmax.AvgMax32 {
	var am minmax.AvgMax32
	am.Init()
	for ni, act := range acts {
		am.UpdateVal(act, int32(ni))
	}
	am.CalcAvg()
	return am
}

// AllWeights returns the exported side x side weight grid of every neuron,
// in neuron order.
func (nt *Network) AllWeights() [][]float32 {
	wts := make([][]float32, len(nt.Neurons))
	for ni := range nt.Neurons {
		wts[ni] = nt.Neurons[ni].ExportWeights(nt.Side).Values
	}
	return wts
}

// SizeReport returns a string reporting the number of neurons and inputs
// in the network, and its total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nn := len(nt.Neurons)
	nin := len(nt.Inputs)
	nrnMem := nn * int(unsafe.Sizeof(Neuron{}))
	wtMem := nn * nin * int(unsafe.Sizeof(float32(0)))
	inMem := nin * int(unsafe.Sizeof(Input{}))
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Wts: %d\t WtMem: %v\n", nt.Nm, nn, (datasize.ByteSize)(nrnMem).HumanReadable(), nn*nin, (datasize.ByteSize)(wtMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Inputs: %d\t InMem: %v\n", "", nin, (datasize.ByteSize)(inMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t %v\n", "Total", (datasize.ByteSize)(nrnMem+wtMem+inMem).HumanReadable())
	return b.String()
}
