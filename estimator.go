// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

import "gonum.org/v1/gonum/mat"

// State is the shared estimator state corrected by the sensor fusion units.
// It is owned by the enclosing local position estimator; this module reads
// and writes it only inside a correction. P is symmetric positive
// semidefinite by invariant of the owner.
type State struct {
	X *mat.VecDense // State vector (NX)
	P *mat.Dense    // Estimation error covariance (NX x NX)
	T uint64        // Current cycle timestamp, monotonic [us]
}

// NewState creates a zero state with the given initial diagonal covariance.
func NewState(varP float64) *State {
	P := mat.NewDense(NX, NX, nil)
	for j := 0; j < NX; j++ {
		P.Set(j, j, varP)
	}
	return &State{
		X: mat.NewVecDense(NX, nil),
		P: P,
	}
}

// CorrectionLimiter sanitizes a state correction in place before it is
// applied, clamping or zeroing physically implausible jumps. The concrete
// policy belongs to the enclosing estimator.
type CorrectionLimiter func(dx *mat.VecDense)

// NewDeltaLimiter returns a limiter that clamps every element of a state
// correction to +-max. With a single value the same bound applies to all
// states; otherwise max must carry one bound per state.
func NewDeltaLimiter(max ...float64) CorrectionLimiter {
	return func(dx *mat.VecDense) {
		for j := 0; j < dx.Len(); j++ {
			lim := max[0]
			if len(max) > 1 {
				lim = max[j]
			}
			if v := dx.AtVec(j); v > lim {
				dx.SetVec(j, lim)
			} else if v < -lim {
				dx.SetVec(j, -lim)
			}
		}
	}
}
