// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package flowfuse

import "github.com/sirupsen/logrus"

// Diagnostics receives health events emitted by a fusion unit. The unit
// never transports its own telemetry; the sink decides formatting and
// destination.
type Diagnostics interface {
	Infof(format string, args ...any)
	Criticalf(format string, args ...any)
}

// NopDiag discards all events.
type NopDiag struct{}

func (NopDiag) Infof(string, ...any) {}

func (NopDiag) Criticalf(string, ...any) {}

// LogrusDiag adapts a logrus logger as the diagnostics sink.
type LogrusDiag struct {
	Log *logrus.Logger
}

func (d LogrusDiag) Infof(format string, args ...any) {
	d.Log.Infof(format, args...)
}

func (d LogrusDiag) Criticalf(format string, args ...any) {
	d.Log.Errorf(format, args...)
}
