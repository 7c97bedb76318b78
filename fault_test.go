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

func TestFaultLevel(t *testing.T) {
	t.Parallel()

	t.Run("ladder is totally ordered", func(t *testing.T) {
		t.Parallel()
		assert.Less(t, FaultNone, FaultMinor)
		assert.Less(t, FaultMinor, FaultSevere)
		assert.Less(t, FaultSevere, FaultExtreme)
		assert.GreaterOrEqual(t, FaultLvlDisable, FaultSevere)
	})

	t.Run("string names", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "NONE", FaultNone.String())
		assert.Equal(t, "MINOR", FaultMinor.String())
		assert.Equal(t, "SEVERE", FaultSevere.String())
		assert.Equal(t, "EXTREME", FaultExtreme.String())
		assert.Equal(t, "UNKNOWN!", FaultLevel(99).String())
	})
}

func TestBetaMax(t *testing.T) {
	t.Parallel()

	t.Run("two dimensional gate", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.094592431, BetaMax(NYFlow), 1e-9)
	})

	t.Run("table grows with dimension", func(t *testing.T) {
		t.Parallel()
		for dof := 2; dof <= 6; dof++ {
			assert.Greater(t, BetaMax(dof), BetaMax(dof-1))
		}
	})

	t.Run("out of range reads zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, BetaMax(99))
	})
}
