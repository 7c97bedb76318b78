// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.29
//

// Implements optical flow measurement fusion for the local position
// estimator: validity gating, velocity observation, Kalman correction,
// innovation fault detection and sensor health tracking.

package flowfuse

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Measurement gate rejections. Each maps to one short-circuit check of the
// validity pipeline; a rejection means the sample is not fused this cycle.
var (
	ErrTilt            = errors.New("roll or pitch beyond sanity bound")
	ErrBelowMinAGL     = errors.New("height above ground below flow minimum")
	ErrLowQuality      = errors.New("sample quality below threshold")
	ErrAGLInvalid      = errors.New("height above ground estimate invalid")
	ErrIntegrationSpan = errors.New("flow integration span out of range")
)

// FlowSample is one raw sample from the optical flow sensor.
type FlowSample struct {
	Quality float64 // Sensor quality metric
	FlowX   float64 // Integrated flow angle about body x [rad]
	FlowY   float64 // Integrated flow angle about body y [rad]
	GyroX   float64 // Integrated gyro angle about body x [rad]
	GyroY   float64 // Integrated gyro angle about body y [rad]
	Dt      uint32  // Integration span [us]
}

// FlowFuser turns raw optical flow samples into velocity observations and
// fuses them into the shared estimator state. One instance per sensor;
// entry points are invoked sequentially by the estimator scheduler, one
// cycle at a time.
type FlowFuser struct {
	opt   *FlowOpt
	diag  Diagnostics
	limit CorrectionLimiter

	qStats  Stats
	gyroXHP *HighPass
	gyroYHP *HighPass

	initialized bool
	fault       FaultLevel
	timeLast    uint64 // Time of last accepted measurement [us]

	innov    [NYFlow]float64
	innovVar [NYFlow]float64
}

// NewFlowFuser creates a fusion unit. A nil opt selects defaults, a nil
// diag discards events and a nil limit applies corrections unclamped.
func NewFlowFuser(opt *FlowOpt, diag Diagnostics, limit CorrectionLimiter) *FlowFuser {
	if opt == nil {
		opt = NewFlowOpt()
	}
	if diag == nil {
		diag = NopDiag{}
	}
	return &FlowFuser{
		opt:     opt,
		diag:    diag,
		limit:   limit,
		gyroXHP: NewHighPass(opt.HPCutoff),
		gyroYHP: NewHighPass(opt.HPCutoff),
	}
}

// Initialized reports whether the sensor has completed initialization.
func (f *FlowFuser) Initialized() bool {
	return f.initialized
}

// Fault returns the current fault level.
func (f *FlowFuser) Fault() FaultLevel {
	return f.fault
}

// Innovation returns the last published residual per observation axis.
func (f *FlowFuser) Innovation() [NYFlow]float64 {
	return f.innov
}

// InnovationVariance returns the last published residual variance per
// observation axis.
func (f *FlowFuser) InnovationVariance() [NYFlow]float64 {
	return f.innovVar
}

// QualityCount returns the number of consecutive accepted samples.
func (f *FlowFuser) QualityCount() uint32 {
	return f.qStats.Count()
}

// measure converts one raw sample into a navigation frame velocity
// observation, applying the validity gate in order. A failing check
// rejects with no side effects, except that any sample passing the
// integration span gate resets the timeout clock and feeds the gyro
// high-pass filters.
func (f *FlowFuser) measure(st *State, att *Attitude, agl float64, aglValid bool, s *FlowSample) (y [NYFlow]float64, err error) {
	// check for sane pitch/roll
	// signed comparison kept as-is: large negative tilt passes the gate
	if att.Roll > FlowMaxTilt || att.Pitch > FlowMaxTilt {
		return y, ErrTilt
	}

	// check for agl
	if agl < FlowMinAGL {
		return y, ErrBelowMinAGL
	}

	// check quality
	if s.Quality < f.opt.MinQuality {
		return y, ErrLowQuality
	}

	if !aglValid {
		return y, ErrAGLInvalid
	}

	// range to the center of the flow image
	d := agl * math.Cos(att.Roll) * math.Cos(att.Pitch)

	dt := float64(s.Dt) / 1.0e6
	if dt > FlowMaxDt || dt < FlowMinDt {
		return y, ErrIntegrationSpan
	}

	// a timing-valid sample resets the timeout clock even if the
	// observation itself ends up unused
	f.timeLast = st.T

	// angular rotation over the integration span
	gyroX := 0.0
	gyroY := 0.0
	if f.opt.GyroComp {
		gyroX = f.gyroXHP.Update(s.GyroX, dt)
		gyroY = f.gyroYHP.Update(s.GyroY, dt)
	}

	// displacement in body frame from ground distance
	// the flow camera frame is assumed to be the body frame
	deltaB := Vec3{
		X: -(s.FlowX - gyroX) * d,
		Y: -(s.FlowY - gyroY) * d,
	}
	deltaN := att.R.MulVec(deltaB)

	PrintD(3, "\tflow x: %10.4f y: %10.4f gyro_x: %10.4f gyro_y: %10.4f d: %10.4f\n",
		s.FlowX, s.FlowY, gyroX, gyroY, d)

	// measurement
	y[YVelX] = deltaN.X / dt
	y[YVelY] = deltaN.Y / dt

	f.qStats.Update(s.Quality)

	return y, nil
}

// Init runs one initialization cycle. The initialization window requires
// consecutive successes: any rejection restarts the quality count.
func (f *FlowFuser) Init(st *State, att *Attitude, agl float64, aglValid bool, s *FlowSample) {
	if _, err := f.measure(st, att, agl, aglValid, s); err != nil {
		f.qStats.Reset()
		return
	}

	// if finished
	if f.qStats.Count() > ReqFlowInitCount {
		f.diag.Infof("flow init: quality %d std %d",
			int(f.qStats.Mean()), int(f.qStats.StdDev()))
		f.initialized = true
		f.fault = FaultNone
	}
}

// Deinit returns the unit to the uninitialized state.
func (f *FlowFuser) Deinit() {
	f.initialized = false
	f.qStats.Reset()
}

// Correct fuses one sample into the shared state. On rejection nothing is
// mutated. On success the residual and its variance are published
// regardless of the fault outcome; the state and covariance are updated
// only while the fault level is below the disable threshold.
func (f *FlowFuser) Correct(st *State, att *Attitude, agl float64, aglValid bool, s *FlowSample) {
	y, err := f.measure(st, att, agl, aglValid, s)
	if err != nil {
		return
	}

	// flow measurement matrix and noise matrix
	C := mat.NewDense(NYFlow, NX, nil)
	C.Set(YVelX, XVelX, 1)
	C.Set(YVelY, XVelY, 1)

	d := agl * math.Cos(att.Roll) * math.Cos(att.Pitch)
	rotRate := att.Rates.Norm()
	stddev := f.opt.VXYStdDev + f.opt.VXYDStdDev*d + f.opt.VXYRStdDev*rotRate
	R := mat.NewDense(NYFlow, NYFlow, nil)
	R.Set(YVelX, YVelX, SQ(stddev))
	R.Set(YVelY, YVelY, R.At(YVelX, YVelX))

	// residual
	var Cx mat.VecDense
	Cx.MulVec(C, st.X)
	r := mat.NewVecDense(NYFlow, nil)
	r.SetVec(YVelX, y[YVelX]-Cx.AtVec(YVelX))
	r.SetVec(YVelY, y[YVelY]-Cx.AtVec(YVelY))
	f.innov[YVelX] = r.AtVec(YVelX)
	f.innov[YVelY] = r.AtVec(YVelY)

	// residual covariance and its inverse
	var CP, S mat.Dense
	CP.Mul(C, st.P)
	S.Mul(&CP, C.T())
	S.Add(&S, R)
	f.innovVar[YVelX] = S.At(YVelX, YVelX)
	f.innovVar[YVelY] = S.At(YVelY, YVelY)
	if DBG_ >= 4 {
		PrintA("\tflow S:\n")
		PrintMat(&S)
	}
	var SI mat.Dense
	if err := SI.Inverse(&S); err != nil {
		PrintD(1, "\tflow S inversion failed: %s\n", err.Error())
		return
	}

	// fault detection
	var SIr mat.VecDense
	SIr.MulVec(&SI, r)
	beta := mat.Dot(r, &SIr)

	if beta > BetaMax(NYFlow) {
		if f.fault < FaultMinor {
			PrintD(2, "\tflow fault, beta %5.2f\n", beta)
			f.fault = FaultMinor
		}
	} else if f.fault != FaultNone {
		f.fault = FaultNone
	}

	if f.fault < FaultLvlDisable {
		// K = P C^t S^-1
		var PCt, K mat.Dense
		PCt.Mul(st.P, C.T())
		K.Mul(&PCt, &SI)
		var dx mat.VecDense
		dx.MulVec(&K, r)
		if f.limit != nil {
			f.limit(&dx)
		}
		st.X.AddVec(st.X, &dx)
		// P -= K C P
		var KCP mat.Dense
		KCP.Mul(&K, &CP)
		st.P.Sub(st.P, &KCP)
	}
}

// CheckTimeout deinitializes the unit when no timing-valid sample has been
// seen within FlowTimeout. Run every cycle; a unit that is already
// uninitialized stays silent.
func (f *FlowFuser) CheckTimeout(st *State) {
	if st.T-f.timeLast > FlowTimeout {
		if f.initialized {
			f.Deinit()
			f.diag.Criticalf("flow timeout")
		}
	}
}
