// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.27
//

package flowfuse

// HighPass is a single-pole high-pass filter. It removes the slow bias
// drift of an integrated gyro reading while passing the fast rotation
// content used for flow de-rotation. The filter must see a continuous
// input signal: skipping updates re-introduces a settling transient.
type HighPass struct {
	fCut float64 // Cutoff frequency [Hz]
	y    float64 // Last output
	u    float64 // Last input
}

func NewHighPass(fCut float64) *HighPass {
	return &HighPass{fCut: fCut}
}

// Update folds one input sample with time step dt [s] and returns the
// filtered value.
func (h *HighPass) Update(u, dt float64) float64 {
	b := 2 * PI * h.fCut * dt
	a := 1 / (1 + b)
	h.y = a * (h.y + u - h.u)
	h.u = u
	return h.y
}

// Reset clears the filter state.
func (h *HighPass) Reset() {
	h.y = 0
	h.u = 0
}
