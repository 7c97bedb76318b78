// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

// FaultLevel is the ordered severity ladder shared by every sensor fusion
// unit of the estimator. This unit only ever writes FaultNone or FaultMinor
// itself; higher rungs come from external escalation and are respected by
// the disable comparison.
type FaultLevel int

const (
	FaultNone FaultLevel = iota
	FaultMinor
	FaultSevere
	FaultExtreme
)

// FaultLvlDisable is the level at or above which corrections are withheld.
const FaultLvlDisable = FaultSevere

func (f FaultLevel) String() string {
	switch f {
	case FaultNone:
		return "NONE"
	case FaultMinor:
		return "MINOR"
	case FaultSevere:
		return "SEVERE"
	case FaultExtreme:
		return "EXTREME"
	default:
		return "UNKNOWN!"
	}
}

// BetaMax returns the gate value for the normalized innovation squared test
// statistic of an observation with the given dimension (chi-squared, fixed
// confidence level, shared across all sensor units).
func BetaMax(dof int) float64 {
	v := [...]float64{
		0,
		8.82050518214,
		12.094592431,
		13.9876612368,
		16.0875642296,
		17.8797700658,
		19.6465647819}
	if dof < len(v) {
		return v[dof]
	} else {
		return 0
	}
}
