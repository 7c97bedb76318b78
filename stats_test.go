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

func TestStats(t *testing.T) {
	t.Parallel()

	t.Run("count increments per update", func(t *testing.T) {
		t.Parallel()
		var s Stats
		for i := 1; i <= 5; i++ {
			s.Update(float64(i))
			assert.Equal(t, uint32(i), s.Count())
		}
	})

	t.Run("mean and stddev", func(t *testing.T) {
		t.Parallel()
		var s Stats
		for _, v := range []float64{1, 2, 3} {
			s.Update(v)
		}
		assert.InDelta(t, 2.0, s.Mean(), 1e-12)
		assert.InDelta(t, math.Sqrt(2.0/3.0), s.StdDev(), 1e-12)
	})

	t.Run("empty accumulator reads zero", func(t *testing.T) {
		t.Parallel()
		var s Stats
		assert.Equal(t, uint32(0), s.Count())
		assert.Equal(t, 0.0, s.Mean())
		assert.Equal(t, 0.0, s.StdDev())
	})

	t.Run("reset zeroes everything", func(t *testing.T) {
		t.Parallel()
		var s Stats
		s.Update(42)
		s.Update(17)
		s.Reset()
		assert.Equal(t, uint32(0), s.Count())
		assert.Equal(t, 0.0, s.Mean())
		assert.Equal(t, 0.0, s.StdDev())
	})

	t.Run("constant signal has zero stddev", func(t *testing.T) {
		t.Parallel()
		var s Stats
		for i := 0; i < 100; i++ {
			s.Update(200)
		}
		assert.InDelta(t, 200.0, s.Mean(), 1e-9)
		assert.InDelta(t, 0.0, s.StdDev(), 1e-6)
	})
}
