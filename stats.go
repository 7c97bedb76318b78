// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.27
//

package flowfuse

import "math"

// Stats accumulates the running mean and standard deviation of a scalar
// signal over an unbounded window. Used as the initialization readiness
// signal for a sensor: the count only grows over consecutive accepted
// samples and is reset on any rejection.
type Stats struct {
	sum   float64
	sumSq float64
	count uint32
}

// Update folds one value into the running statistics.
func (s *Stats) Update(v float64) {
	s.sum += v
	s.sumSq += v * v
	s.count++
}

// Reset zeroes the accumulator.
func (s *Stats) Reset() {
	*s = Stats{}
}

func (s *Stats) Count() uint32 {
	return s.count
}

func (s *Stats) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

func (s *Stats) StdDev() float64 {
	if s.count == 0 {
		return 0
	}
	m := s.Mean()
	v := s.sumSq/float64(s.count) - m*m
	// guard against a tiny negative from rounding
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}
