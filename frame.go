// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

import "math"

//-------------------------------------------------------------------
// Vec3
//-------------------------------------------------------------------

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func NewVec3(x, y, z float64) *Vec3 {
	return &Vec3{
		X: x,
		Y: y,
		Z: z,
	}
}

func (v *Vec3) Norm() float64 {
	return math.Sqrt(SQ(v.X) + SQ(v.Y) + SQ(v.Z))
}

//-------------------------------------------------------------------
// Mat3
//-------------------------------------------------------------------

// Mat3 is a row-major 3x3 rotation matrix (body to navigation frame).
type Mat3 [3][3]float64

func (m *Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Identity3 returns the identity rotation.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// DCMFromEuler builds the body-to-navigation rotation matrix from roll,
// pitch, yaw [rad] using the aerospace Z-Y-X rotation sequence.
func DCMFromEuler(roll, pitch, yaw float64) Mat3 {
	cphi, sphi := math.Cos(roll), math.Sin(roll)
	cth, sth := math.Cos(pitch), math.Sin(pitch)
	cpsi, spsi := math.Cos(yaw), math.Sin(yaw)
	return Mat3{
		{cth * cpsi, sphi*sth*cpsi - cphi*spsi, cphi*sth*cpsi + sphi*spsi},
		{cth * spsi, sphi*sth*spsi + cphi*cpsi, cphi*sth*spsi - sphi*cpsi},
		{-sth, sphi * cth, cphi * cth},
	}
}

//-------------------------------------------------------------------
// Attitude
//-------------------------------------------------------------------

// Attitude is the per-cycle attitude input consumed from the attitude
// estimator. It is read-only for this module.
type Attitude struct {
	Roll  float64 // [rad]
	Pitch float64 // [rad]
	R     Mat3    // Body-to-navigation rotation
	Rates Vec3    // Body angular rates [rad/s]
}
