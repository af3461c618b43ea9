// Package kinematics implements forward kinematics for planar serial chains and closed form
// inverse kinematics for planar two link arms.
//
// Joint angles are in degrees throughout. Each joint angle is relative to the orientation of the
// previous link; the first joint is relative to the +X axis of the fixed base at the origin.
package kinematics

import (
	"gonum.org/v1/gonum/floats"

	"go.viam.com/armsim/utils"
)

// LinkChain is the ordered list of link lengths from the base outward.
type LinkChain []float64

// Validate returns an error if any link length is negative, NaN or infinite. Zero length links
// are degenerate but allowed.
func (lc LinkChain) Validate() error {
	for i, l := range lc {
		if !utils.IsFinite(l) || l < 0 {
			return NewInvalidLinkLengthError(i, l)
		}
	}
	return nil
}

// DoF returns the number of joints the chain expects.
func (lc LinkChain) DoF() int {
	return len(lc)
}

// Reach returns the maximum distance from the base that the chain can reach.
func (lc LinkChain) Reach() float64 {
	if len(lc) == 0 {
		return 0
	}
	return floats.Sum(lc)
}

// Configuration is one joint angle per link, in degrees.
type Configuration []float64

// Copy returns an independent copy of the configuration.
func (c Configuration) Copy() Configuration {
	if c == nil {
		return nil
	}
	out := make(Configuration, len(c))
	copy(out, c)
	return out
}

// Wrapped returns a copy of the configuration with every angle in (-180, 180].
func (c Configuration) Wrapped() Configuration {
	out := make(Configuration, len(c))
	for i, a := range c {
		out[i] = utils.WrapDeg(a)
	}
	return out
}

// Radians returns the joint angles converted to radians.
func (c Configuration) Radians() []float64 {
	out := make([]float64, len(c))
	for i, a := range c {
		out[i] = utils.DegToRad(a)
	}
	return out
}

// CheckShape returns a shape mismatch error unless the configuration has one angle per link.
func (lc LinkChain) CheckShape(c Configuration) error {
	if len(c) != len(lc) {
		return NewIncorrectDoFError(len(c), len(lc))
	}
	return nil
}
