package kinematics

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

const (
	// Targets closer to the base than this have no usable direction.
	originEpsilon = 1e-12
	// Radius changes smaller than this do not count as clamping.
	clampEpsilon = 1e-9
)

// Workspace is the annulus reachable by a two link arm: every point whose distance from the base
// lies in [Min, Max].
type Workspace struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewWorkspace returns the workspace of a two link arm with links l1 and l2.
func NewWorkspace(l1, l2 float64) Workspace {
	return Workspace{Min: math.Abs(l1 - l2), Max: l1 + l2}
}

// Workspace returns the annulus reachable by the chain. The inner radius is nonzero only when one
// link is longer than all the others combined.
func (lc LinkChain) Workspace() Workspace {
	if len(lc) == 0 {
		return Workspace{}
	}
	reach := lc.Reach()
	return Workspace{Min: math.Max(0, 2*floats.Max(lc)-reach), Max: reach}
}

// Contains reports whether target is reachable.
func (ws Workspace) Contains(target r2.Point) bool {
	r := target.Norm()
	return r >= ws.Min-clampEpsilon && r <= ws.Max+clampEpsilon
}

// Clamp moves target radially onto the nearer workspace boundary if it lies outside the
// workspace. It reports whether the target moved.
//
// A target at the base has no direction, so when the inner radius is positive it is placed on
// the +X axis at that radius.
func (ws Workspace) Clamp(target r2.Point) (r2.Point, bool) {
	r := target.Norm()
	if r < originEpsilon {
		rNew := math.Max(ws.Min, math.Min(r, ws.Max))
		if math.Abs(rNew-r) <= clampEpsilon {
			return target, false
		}
		return r2.Point{X: rNew, Y: 0}, true
	}

	rNew := math.Min(math.Max(r, ws.Min), ws.Max)
	if math.Abs(rNew-r) <= clampEpsilon {
		return target, false
	}
	return target.Mul(rNew / r), true
}

// ClampToWorkspace clamps target onto the workspace of a two link arm with links l1 and l2.
func ClampToWorkspace(target r2.Point, l1, l2 float64) (r2.Point, bool) {
	return NewWorkspace(l1, l2).Clamp(target)
}
