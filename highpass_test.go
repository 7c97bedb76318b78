// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighPass(t *testing.T) {
	t.Parallel()

	t.Run("first sample passes through scaled", func(t *testing.T) {
		t.Parallel()
		h := NewHighPass(1.0)
		dt := 0.1
		a := 1 / (1 + 2*PI*1.0*dt)
		y := h.Update(2.0, dt)
		assert.InDelta(t, a*2.0, y, 1e-12)
	})

	t.Run("constant input decays to zero", func(t *testing.T) {
		t.Parallel()
		h := NewHighPass(1.0)
		var y float64
		for i := 0; i < 200; i++ {
			y = h.Update(5.0, 0.1)
		}
		assert.Less(t, math.Abs(y), 1e-9)
	})

	t.Run("step change passes", func(t *testing.T) {
		t.Parallel()
		h := NewHighPass(1.0)
		for i := 0; i < 200; i++ {
			h.Update(5.0, 0.1)
		}
		y := h.Update(6.0, 0.1)
		// settled at ~0; the unit step comes through attenuated by a only
		a := 1 / (1 + 2*PI*1.0*0.1)
		assert.InDelta(t, a, y, 1e-6)
	})

	t.Run("reset clears state", func(t *testing.T) {
		t.Parallel()
		h := NewHighPass(0.5)
		h.Update(3.0, 0.01)
		h.Update(4.0, 0.01)
		h.Reset()
		a := 1 / (1 + 2*PI*0.5*0.01)
		assert.InDelta(t, a*1.0, h.Update(1.0, 0.01), 1e-12)
	})
}
