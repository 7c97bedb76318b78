// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.27
//

package flowfuse

const (
	PI = 3.1415926535897932 // Pi
)

// NX is the dimension of the shared estimator state vector.
const NX = 10

// State vector indices (layout owned by the enclosing local position estimator)
const (
	XPosX = iota // Position north [m]
	XPosY        // Position east [m]
	XPosZ        // Position down [m]
	XVelX        // Velocity north [m/s]
	XVelY        // Velocity east [m/s]
	XVelZ        // Velocity down [m/s]
	XBiasX       // Accel bias x [m/s^2]
	XBiasY       // Accel bias y [m/s^2]
	XBiasZ       // Accel bias z [m/s^2]
	XTerrZ       // Terrain altitude [m]
)

// NYFlow is the dimension of the flow velocity observation.
const NYFlow = 2

// Flow observation vector indices
const (
	YVelX = iota // Observed velocity north [m/s]
	YVelY        // Observed velocity east [m/s]
)

const (
	ReqFlowInitCount = 10      // Consecutive good samples required for initialization
	FlowTimeout      = 1000000 // Time without an accepted sample before deinit [us]
	FlowMinAGL       = 0.3     // Minimum height above ground for usable flow geometry [m]
	FlowMaxTilt      = 0.5     // Roll/pitch sanity bound [rad]
	FlowMaxDt        = 0.5     // Maximum flow integration span [s]
	FlowMinDt        = 1.0e-6  // Minimum flow integration span [s]
)
