// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emer/emergent/v2/weights"
)

func TestWtsJSON(t *testing.T) {
	net := newTestNet(1, SqrtSumNorm, 0.1)
	trainNet(t, net, testImages(5, 9), 2)
	var b bytes.Buffer
	if err := net.WriteWtsJSON(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"Norm": "SqrtSumNorm"`) {
		t.Errorf("missing Norm metadata:\n%s", b.String())
	}

	ld := NewNetwork("Loaded", testSide, 5)
	if err := ld.ReadWtsJSON(&b); err != nil {
		t.Fatal(err)
	}
	if ld.Nm != "Test" {
		t.Errorf("Nm: %q, cor: Test", ld.Nm)
	}
	for ni := range net.Neurons {
		for i, wt := range net.Neurons[ni].Wts {
			if lw := ld.Neurons[ni].Wts[i]; lw != wt {
				t.Fatalf("neuron %d wt %d: %v != %v", ni, i, lw, wt)
			}
		}
	}
}

func TestSaveOpenWtsJSON(t *testing.T) {
	net := newTestNet(1, SumNorm, 0.1)
	for _, fn := range []string{"wts.json", "wts.json.gz"} {
		fnm := filepath.Join(t.TempDir(), fn)
		if err := net.SaveWtsJSON(fnm); err != nil {
			t.Fatal(err)
		}
		ld := NewNetwork("Loaded", testSide, 5)
		if err := ld.OpenWtsJSON(fnm); err != nil {
			t.Fatal(err)
		}
		wts := net.AllWeights()
		lwts := ld.AllWeights()
		for ni := range wts {
			for i := range wts[ni] {
				if wts[ni][i] != lwts[ni][i] {
					t.Fatalf("%s: neuron %d wt %d: %v != %v", fn, ni, i, lwts[ni][i], wts[ni][i])
				}
			}
		}
	}
}

func TestWtsShapeMismatch(t *testing.T) {
	net := newTestNet(1, SumNorm, 0.1)
	var b bytes.Buffer
	if err := net.WriteWtsJSON(&b); err != nil {
		t.Fatal(err)
	}
	ld := NewNetwork("Small", 2, 5)
	if err := ld.ReadWtsJSON(&b); !errors.Is(err, ErrShape) {
		t.Errorf("err: %v, want ErrShape", err)
	}
}

func TestSetWtsUnchangedOnError(t *testing.T) {
	net := newTestNet(1, SumNorm, 0.1)
	orig := net.AllWeights()
	nw := &weights.Network{Network: "Other", Layers: []weights.Layer{
		{Layer: "0", Units: map[string][]float32{"Wt": make([]float32, net.NInputs())}},
		{Layer: "1", Units: map[string][]float32{"Wt": make([]float32, 3)}},
	}}
	same := func(msg string) {
		t.Helper()
		wts := net.AllWeights()
		for ni := range wts {
			for i := range wts[ni] {
				if wts[ni][i] != orig[ni][i] {
					t.Fatalf("%s: neuron %d wt %d changed: %v -> %v", msg, ni, i, orig[ni][i], wts[ni][i])
				}
			}
		}
		if net.Nm != "Test" {
			t.Errorf("%s: Nm changed to %q", msg, net.Nm)
		}
	}
	if err := net.SetWts(nw); !errors.Is(err, ErrShape) {
		t.Errorf("short layer: err: %v, want ErrShape", err)
	}
	same("short layer")

	nw.Layers[1].Units["Wt"] = make([]float32, net.NInputs())
	nw.Layers[1].MetaData = map[string]string{"Act": "bogus"}
	if err := net.SetWts(nw); err == nil {
		t.Errorf("expected error for bad Act")
	}
	same("bad Act")

	nw.Layers[1].MetaData["Act"] = "0.5"
	if err := net.SetWts(nw); err != nil {
		t.Fatal(err)
	}
	if net.Nm != "Other" || net.Neuron(1).Act != 0.5 {
		t.Errorf("Nm: %q, Act: %v", net.Nm, net.Neuron(1).Act)
	}
	for ni := 0; ni < 2; ni++ {
		for i, wt := range net.Neuron(ni).Wts {
			if wt != 0 {
				t.Fatalf("neuron %d wt %d: %v, cor: 0", ni, i, wt)
			}
		}
	}
	if net.Neuron(2).Wts[0] != orig[2][0] {
		t.Errorf("neuron 2 not in file but changed")
	}
}

var errTestWrite = errors.New("test write failure")

// failWriter accepts the first n bytes and fails after that
type failWriter struct {
	n int
}

func (fw *failWriter) Write(b []byte) (int, error) {
	if len(b) > fw.n {
		k := fw.n
		fw.n = 0
		return k, errTestWrite
	}
	fw.n -= len(b)
	return len(b), nil
}

func TestWriteWtsErrors(t *testing.T) {
	net := newTestNet(1, SumNorm, 0.1)
	if err := net.writeWts(&failWriter{}, false); !errors.Is(err, errTestWrite) {
		t.Errorf("plain: err: %v, want write failure", err)
	}
	// the 10 byte gzip header succeeds, the compressed data fails when flushed
	if err := net.writeWts(&failWriter{n: 10}, true); !errors.Is(err, errTestWrite) {
		t.Errorf("gzip: err: %v, want write failure", err)
	}
	var b bytes.Buffer
	if err := net.writeWts(&b, true); err != nil {
		t.Errorf("gzip to buffer: %v", err)
	}
	fnm := filepath.Join(t.TempDir(), "nodir", "wts.json.gz")
	if err := net.SaveWtsJSON(fnm); err == nil {
		t.Errorf("expected error saving to missing directory")
	}
}
