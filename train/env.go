// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package train

import (
	"fmt"

	"github.com/emer/emergent/v2/env"
	"github.com/emer/etable/v2/etensor"
)

// Env steps through the images of a Data set in order, one image per trial,
// wrapping around to the next epoch at the end of the set.
type Env struct {
	Data  Data             `desc:"the labeled images"`
	Image *etensor.Float32 `desc:"current image, Side x Side (Y, X), normalized to [0,1]"`
	Label int              `desc:"label of the current image"`
	Epoch env.Ctr          `view:"inline" desc:"number of times through the set"`
	Trial env.Ctr          `view:"inline" desc:"index of the current image"`
}

// Config sets the image set
func (ev *Env) Config(data Data) {
	ev.Data = data
}

func (ev *Env) Validate() error {
	if ev.Data == nil || ev.Data.Len() == 0 {
		return fmt.Errorf("train.Env: no images -- need to Config")
	}
	return nil
}

// Init is called to restart the environment
func (ev *Env) Init() {
	ev.Epoch.Init()
	ev.Trial.Init()
	ev.Trial.Max = ev.Data.Len()
	ev.Trial.Cur = -1 // init state -- key so that first Step() = 0
	ev.Image = nil
	ev.Label = -1
}

// Step advances to the next image, returning true if this started a new epoch
func (ev *Env) Step() bool {
	wrap := ev.Trial.Incr() // true if wraps around Max back to 0
	if wrap {
		ev.Epoch.Incr()
	}
	ev.Image = ev.Data.Image(ev.Trial.Cur)
	ev.Label = ev.Data.Label(ev.Trial.Cur)
	return wrap
}

// String returns the current state as a string
func (ev *Env) String() string {
	return fmt.Sprintf("%s_%d_Lbl_%d", ev.Data.Name(), ev.Trial.Cur, ev.Label)
}
