// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compae

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/emer/emergent/v2/weights"
	"github.com/goki/ki/indent"
)

// SaveWtsJSON saves network weights (and any other state that adapts with learning)
// to a JSON-formatted file.  If filename has .gz extension, then file is gzip compressed.
func (nt *Network) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	err = nt.writeWts(fp, filepath.Ext(filename) == ".gz")
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Println(err)
	}
	return err
}

// writeWts writes the weights to w, gzip compressed if gz.
// Returns the first error from writing or from flushing the compressor.
func (nt *Network) writeWts(w io.Writer, gz bool) error {
	if !gz {
		return nt.WriteWtsJSON(w)
	}
	gzr := gzip.NewWriter(w)
	err := nt.WriteWtsJSON(gzr)
	if cerr := gzr.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenWtsJSON opens network weights (and any other state that adapts with learning)
// from a JSON-formatted file.  If filename has .gz extension, then file is gzip uncompressed.
func (nt *Network) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return nt.ReadWtsJSON(gzr)
	}
	return nt.ReadWtsJSON(fp)
}

// WriteWtsJSON writes the weights of every neuron in a JSON text format,
// as one layer record per neuron with the side x side weight grid stored
// row-major in the "Wt" unit variable.  We build in the indentation logic
// to make it much faster and more efficient.
func (nt *Network) WriteWtsJSON(w io.Writer) error {
	ew := &errWriter{w: w}
	depth := 0
	ew.write(indent.TabBytes(depth), "{\n")
	depth++
	ew.write(indent.TabBytes(depth), fmt.Sprintf("\"Network\": %q,\n", nt.Nm))
	ew.write(indent.TabBytes(depth), "\"MetaData\": {\n")
	depth++
	md := nt.wtsMetaData()
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for ki, k := range keys {
		ew.write(indent.TabBytes(depth), fmt.Sprintf("%q: %q", k, md[k]))
		if ki == len(keys)-1 {
			ew.write(nil, "\n")
		} else {
			ew.write(nil, ",\n")
		}
	}
	depth--
	ew.write(indent.TabBytes(depth), "},\n")
	nn := len(nt.Neurons)
	if nn == 0 {
		ew.write(indent.TabBytes(depth), "\"Layers\": null\n")
	} else {
		ew.write(indent.TabBytes(depth), "\"Layers\": [\n")
		depth++
		for ni := range nt.Neurons {
			nt.Neurons[ni].writeWtsJSON(ew, depth)
			if ni == nn-1 {
				ew.write(nil, "\n")
			} else {
				ew.write(nil, ",\n")
			}
		}
		depth--
		ew.write(indent.TabBytes(depth), "]\n")
	}
	depth--
	ew.write(indent.TabBytes(depth), "}\n")
	return ew.err
}

// wtsMetaData returns the metadata saved with the weights
func (nt *Network) wtsMetaData() map[string]string {
	md := make(map[string]string, len(nt.MetaData)+3)
	for k, v := range nt.MetaData {
		md[k] = v
	}
	md["Side"] = strconv.Itoa(nt.Side)
	md["LRate"] = strconv.FormatFloat(float64(nt.Params.LRate), 'g', -1, 32)
	md["Norm"] = nt.Params.Norm.String()
	return md
}

// writeWtsJSON writes this neuron's weights as a layer record.
// Leaves the record unterminated as the outer loop needs to add , or just \n
func (nrn *Neuron) writeWtsJSON(ew *errWriter, depth int) {
	ew.write(indent.TabBytes(depth), "{\n")
	depth++
	ew.write(indent.TabBytes(depth), fmt.Sprintf("\"Layer\": %q,\n", nrn.Nm))
	ew.write(indent.TabBytes(depth), "\"MetaData\": {\n")
	ew.write(indent.TabBytes(depth+1), fmt.Sprintf("\"Act\": \"%g\"\n", nrn.Act))
	ew.write(indent.TabBytes(depth), "},\n")
	ew.write(indent.TabBytes(depth), "\"Units\": {\n")
	depth++
	ew.write(indent.TabBytes(depth), "\"Wt\": [ ")
	nw := len(nrn.Wts)
	for i, wt := range nrn.Wts {
		ew.write(nil, strconv.FormatFloat(float64(wt), 'g', -1, 32))
		if i < nw-1 {
			ew.write(nil, ", ")
		}
	}
	ew.write(nil, " ]\n")
	depth--
	ew.write(indent.TabBytes(depth), "}\n")
	depth--
	ew.write(indent.TabBytes(depth), "}")
}

// ReadWtsJSON reads network weights from the receiver-side perspective
// in a JSON text format.  Reads entire file into a temporary weights.Network
// structure that is then passed to SetWts.
func (nt *Network) ReadWtsJSON(r io.Reader) error {
	nw, err := weights.NetReadJSON(r)
	if err != nil {
		return err // note: already logged
	}
	err = nt.SetWts(nw)
	if err != nil {
		log.Println(err)
	}
	return err
}

// SetWts sets the weights for this network from weights.Network decoded values.
// Each layer record is matched to the neuron of the same name.  All records
// are checked before any weights are set, so on error the network is unchanged.
func (nt *Network) SetWts(nw *weights.Network) error {
	if sd, ok := nw.MetaData["Side"]; ok {
		side, err := strconv.Atoi(sd)
		if err != nil || side != nt.Side {
			return fmt.Errorf("%w: file side %q, network side %d", ErrShape, sd, nt.Side)
		}
	}
	byName := make(map[string]*Neuron, len(nt.Neurons))
	for ni := range nt.Neurons {
		byName[nt.Neurons[ni].Nm] = &nt.Neurons[ni]
	}
	nrns := make([]*Neuron, len(nw.Layers))
	acts := make([]float32, len(nw.Layers))
	hasAct := make([]bool, len(nw.Layers))
	for li := range nw.Layers {
		lw := &nw.Layers[li]
		nrn, ok := byName[lw.Layer]
		if !ok {
			return fmt.Errorf("%w: no neuron named %q", ErrShape, lw.Layer)
		}
		wts, ok := lw.Units["Wt"]
		if !ok || len(wts) != len(nrn.Wts) {
			return fmt.Errorf("%w: neuron %q has %d weights, need %d", ErrShape, lw.Layer, len(wts), len(nrn.Wts))
		}
		if act, ok := lw.MetaData["Act"]; ok {
			pv, err := strconv.ParseFloat(act, 32)
			if err != nil {
				return fmt.Errorf("compae: neuron %q Act: %w", lw.Layer, err)
			}
			acts[li] = float32(pv)
			hasAct[li] = true
		}
		nrns[li] = nrn
	}

	if nw.Network != "" {
		nt.Nm = nw.Network
	}
	if nw.MetaData != nil {
		if nt.MetaData == nil {
			nt.MetaData = make(map[string]string)
		}
		for mk, mv := range nw.MetaData {
			nt.MetaData[mk] = mv
		}
	}
	for li, nrn := range nrns {
		copy(nrn.Wts, nw.Layers[li].Units["Wt"])
		if hasAct[li] {
			nrn.Act = acts[li]
		}
	}
	return nil
}

// errWriter keeps the first write error so the JSON writer does not
// need to check every write.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(ind []byte, s string) {
	if ew.err != nil {
		return
	}
	if len(ind) > 0 {
		if _, ew.err = ew.w.Write(ind); ew.err != nil {
			return
		}
	}
	_, ew.err = ew.w.Write([]byte(s))
}
