// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	t.Parallel()

	v := NewVec3(3, 4, 12)
	assert.InDelta(t, 13.0, v.Norm(), 1e-12)
	assert.Equal(t, 0.0, (&Vec3{}).Norm())
}

func TestDCMFromEuler(t *testing.T) {
	t.Parallel()

	t.Run("zero angles give identity", func(t *testing.T) {
		t.Parallel()
		R := DCMFromEuler(0, 0, 0)
		I := Identity3()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, I[i][j], R[i][j], 1e-12)
			}
		}
	})

	t.Run("yaw rotates body x into nav y", func(t *testing.T) {
		t.Parallel()
		R := DCMFromEuler(0, 0, PI/2)
		n := R.MulVec(Vec3{X: 1})
		assert.InDelta(t, 0.0, n.X, 1e-12)
		assert.InDelta(t, 1.0, n.Y, 1e-12)
		assert.InDelta(t, 0.0, n.Z, 1e-12)
	})

	t.Run("pitch rotates body x upward", func(t *testing.T) {
		t.Parallel()
		R := DCMFromEuler(0, PI/2, 0)
		n := R.MulVec(Vec3{X: 1})
		assert.InDelta(t, 0.0, n.X, 1e-12)
		assert.InDelta(t, -1.0, n.Z, 1e-12)
	})

	t.Run("rotation preserves length", func(t *testing.T) {
		t.Parallel()
		R := DCMFromEuler(0.3, -0.2, 1.1)
		n := R.MulVec(Vec3{X: 1, Y: -2, Z: 0.5})
		want := (&Vec3{X: 1, Y: -2, Z: 0.5}).Norm()
		assert.InDelta(t, want, n.Norm(), 1e-12)
	})
}
