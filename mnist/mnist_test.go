// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mnist

import (
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	testSide = 3
	testN    = 4
)

// writeIDX writes a gzipped IDX file with given magic number, dims and data
func writeIDX(t *testing.T, fnm string, magic uint32, dims []uint32, data []byte) {
	t.Helper()
	fp, err := os.Create(fnm)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	gz := gzip.NewWriter(fp)
	hdr := append([]uint32{magic}, dims...)
	if err := binary.Write(gz, binary.BigEndian, hdr); err != nil {
		t.Fatal(err)
	}
	if _, err := gz.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
}

// writeTestData writes testN images of testSide x testSide where image i has
// all pixels at value i * 85 except pixel i which is 255, with label i
func writeTestData(t *testing.T) string {
	dir := t.TempDir()
	npix := testSide * testSide
	imgs := make([]byte, testN*npix)
	lbls := make([]byte, testN)
	for i := 0; i < testN; i++ {
		for p := 0; p < npix; p++ {
			imgs[i*npix+p] = byte(i * 85)
		}
		imgs[i*npix+i] = 255
		lbls[i] = byte(i)
	}
	for _, pfx := range []string{"train", "t10k"} {
		writeIDX(t, filepath.Join(dir, pfx+"-images-idx3-ubyte.gz"), 0x803, []uint32{testN, testSide, testSide}, imgs)
		writeIDX(t, filepath.Join(dir, pfx+"-labels-idx1-ubyte.gz"), 0x801, []uint32{testN}, lbls)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeTestData(t)
	train, test, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, st := range []*Set{train, test} {
		if st.Side != testSide || st.Len() != testN {
			t.Fatalf("%s: side: %d, len: %d", st.Name(), st.Side, st.Len())
		}
		for i := 0; i < testN; i++ {
			if lbl := st.Label(i); lbl != i {
				t.Errorf("%s: label %d: %d", st.Name(), i, lbl)
			}
			img := st.Image(i)
			for p, v := range img.Values {
				cor := float32(i*85) / 255
				if p == i {
					cor = 1
				}
				if v != cor {
					t.Errorf("%s: image %d pixel %d: %v, cor: %v", st.Name(), i, p, v, cor)
				}
				if v < 0 || v > 1 {
					t.Errorf("%s: image %d pixel %d out of [0,1]: %v", st.Name(), i, p, v)
				}
			}
		}
	}
	train.Limit(2)
	if train.Len() != 2 {
		t.Errorf("Limit(2): len: %d", train.Len())
	}
	train.Limit(100)
	if train.Len() != testN {
		t.Errorf("Limit(100): len: %d", train.Len())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, _, err := Load(t.TempDir()); err == nil {
		t.Errorf("expected error loading from empty dir")
	}
}
