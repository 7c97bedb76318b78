// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

// FlowOpt contains options and parameters for the optical flow fusion unit
// These parameters control measurement gating and the per-cycle observation
// noise model
type FlowOpt struct {
	MinQuality float64 // Minimum sensor quality accepted by the validity gate
	GyroComp   bool    // If true, de-rotate flow with high-passed integrated gyro
	HPCutoff   float64 // High-pass cutoff for gyro bias removal [Hz]
	VXYStdDev  float64 // Base velocity observation noise [m/s]
	VXYDStdDev float64 // Observation noise growth per meter of range [m/s/m]
	VXYRStdDev float64 // Observation noise growth per rad/s of body rotation [m/s/(rad/s)]
}

// NewFlowOpt creates a new FlowOpt with default values
// Default values are tuned for a downward-facing flow sensor on a small multirotor
func NewFlowOpt() *FlowOpt {
	return &FlowOpt{
		MinQuality: 150,   // Reject samples below this quality metric
		GyroComp:   true,  // Compensate rotation by default
		HPCutoff:   0.001, // Very slow cutoff: only bias drift is removed [Hz]
		VXYStdDev:  0.1,   // Base observation noise [m/s]
		VXYDStdDev: 0.1,   // Noise per meter of ground distance
		VXYRStdDev: 7.0,   // Noise per rad/s of rotation rate
	}
}
