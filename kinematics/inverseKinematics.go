package kinematics

import (
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/armsim/utils"
)

// Branch selects one of the two closed form solutions of a two link arm.
type Branch int

const (
	// ElbowUp takes the negative elbow angle. It is the zero value and the default.
	ElbowUp Branch = iota
	// ElbowDown takes the positive elbow angle.
	ElbowDown
)

func (b Branch) String() string {
	switch b {
	case ElbowUp:
		return "elbow_up"
	case ElbowDown:
		return "elbow_down"
	default:
		return "unknown"
	}
}

// ParseBranch parses "elbow_up" or "elbow_down" (hyphens and case are ignored). An empty string
// is the default ElbowUp.
func ParseBranch(s string) (Branch, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "", "elbow_up", "up":
		return ElbowUp, nil
	case "elbow_down", "down":
		return ElbowDown, nil
	default:
		return ElbowUp, errors.Wrapf(ErrUnknownBranch, "%q", s)
	}
}

// Solution is a shoulder and elbow angle pair in degrees, each in (-180, 180].
type Solution struct {
	Shoulder float64 `json:"shoulder"`
	Elbow    float64 `json:"elbow"`
}

// Configuration returns the solution as a two joint configuration.
func (s Solution) Configuration() Configuration {
	return Configuration{s.Shoulder, s.Elbow}
}

// SolveAll returns both closed form solutions for reaching target with links of length l1 and l2.
//
// The cosine of the elbow angle is clamped to [-1, 1] before taking its arccosine, so targets
// outside the workspace yield the nearest boundary solution instead of failing. Callers that need
// strict reachability should check Workspace.Contains or clamp the target first.
func SolveAll(target r2.Point, l1, l2 float64) (up, down Solution) {
	x, y := target.X, target.Y
	rSq := x*x + y*y

	c2 := (rSq - l1*l1 - l2*l2) / (2 * l1 * l2)
	if math.IsNaN(c2) {
		// 0/0 only happens with a zero length link at the exact reach; any elbow angle works.
		c2 = 1
	}
	c2 = utils.Clamp(c2, -1, 1)
	elbow := math.Acos(c2)

	shoulder := func(theta2 float64) float64 {
		k1 := l1 + l2*math.Cos(theta2)
		k2 := l2 * math.Sin(theta2)
		return math.Atan2(y, x) - math.Atan2(k2, k1)
	}

	up = newSolution(shoulder(-elbow), -elbow)
	down = newSolution(shoulder(elbow), elbow)
	return up, down
}

// Solve returns the solution on the requested branch. See SolveAll.
func Solve(target r2.Point, l1, l2 float64, branch Branch) Solution {
	up, down := SolveAll(target, l1, l2)
	if branch == ElbowDown {
		return down
	}
	return up
}

func newSolution(shoulderRad, elbowRad float64) Solution {
	return Solution{
		Shoulder: utils.WrapDeg(utils.RadToDeg(shoulderRad)),
		Elbow:    utils.WrapDeg(utils.RadToDeg(elbowRad)),
	}
}
