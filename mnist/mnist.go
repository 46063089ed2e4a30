// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mnist loads the MNIST handwritten digit images and labels from the
standard gzipped IDX files, and presents each image as a Side x Side
tensor of pixel intensities normalized to [0,1].
*/
package mnist

import (
	"fmt"

	"github.com/emer/etable/v2/etensor"
	"github.com/petar/GoMNIST"
)

// NLabels is the number of distinct digit labels
const NLabels = 10

// Set is one set of images with their labels, e.g., the training set
type Set struct {
	Nm   string `desc:"name of the set"`
	Side int    `desc:"width and height of each image"`
	N    int    `desc:"number of images in use -- at most the number in the file"`

	raw *GoMNIST.Set
}

// Load loads the training and testing sets from the gzipped IDX files in dir:
// train-images-idx3-ubyte.gz, train-labels-idx1-ubyte.gz,
// t10k-images-idx3-ubyte.gz and t10k-labels-idx1-ubyte.gz
func Load(dir string) (train, test *Set, err error) {
	trn, tst, err := GoMNIST.Load(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("mnist: loading from %s: %w", dir, err)
	}
	train, err = NewSet("Train", trn)
	if err != nil {
		return nil, nil, err
	}
	test, err = NewSet("Test", tst)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// NewSet returns a new Set wrapping given raw set, which must have square images
// and one label per image
func NewSet(name string, raw *GoMNIST.Set) (*Set, error) {
	if raw.NRow != raw.NCol {
		return nil, fmt.Errorf("mnist: %s images are not square: %d x %d", name, raw.NRow, raw.NCol)
	}
	if len(raw.Images) != len(raw.Labels) {
		return nil, fmt.Errorf("mnist: %s has %d images but %d labels", name, len(raw.Images), len(raw.Labels))
	}
	return &Set{Nm: name, Side: raw.NRow, N: raw.Count(), raw: raw}, nil
}

// Name returns the name of the set
func (st *Set) Name() string {
	return st.Nm
}

// Len returns the number of images in use
func (st *Set) Len() int {
	return st.N
}

// Limit restricts the set to the first n images, if there are more than that
func (st *Set) Limit(n int) {
	if n > 0 && n < st.raw.Count() {
		st.N = n
	} else {
		st.N = st.raw.Count()
	}
}

// Label returns the digit label of image i
func (st *Set) Label(i int) int {
	return int(st.raw.Labels[i])
}

// Image returns image i as a new Side x Side (Y, X) tensor normalized to [0,1]
func (st *Set) Image(i int) *etensor.Float32 {
	tsr := etensor.NewFloat32([]int{st.Side, st.Side}, nil, []string{"Y", "X"})
	st.ImageTo(i, tsr)
	return tsr
}

// ImageTo copies image i into given Side x Side tensor, normalized to [0,1]
func (st *Set) ImageTo(i int, tsr *etensor.Float32) {
	img := st.raw.Images[i]
	for p, v := range img {
		tsr.Values[p] = float32(v) / 255
	}
}
