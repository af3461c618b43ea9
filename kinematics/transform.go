package kinematics

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/armsim/utils"
)

// Pose is the position of every joint along a chain, starting with the base at the origin and
// ending with the end effector. A pose always has one more point than its chain has links.
type Pose []r2.Point

// Base returns the first point of the pose.
func (p Pose) Base() r2.Point {
	if len(p) == 0 {
		return r2.Point{}
	}
	return p[0]
}

// EndEffector returns the last point of the pose.
func (p Pose) EndEffector() r2.Point {
	if len(p) == 0 {
		return r2.Point{}
	}
	return p[len(p)-1]
}

// ComputePose runs forward kinematics: it accumulates each joint angle onto the running link
// orientation and extends the chain one link at a time from the origin.
func ComputePose(chain LinkChain, config Configuration) (Pose, error) {
	if err := chain.CheckShape(config); err != nil {
		return nil, err
	}

	pose := make(Pose, 1, len(chain)+1)
	theta := 0.
	for i, length := range chain {
		theta += utils.DegToRad(config[i])
		sin, cos := math.Sincos(theta)
		prev := pose[len(pose)-1]
		pose = append(pose, r2.Point{X: prev.X + length*cos, Y: prev.Y + length*sin})
	}
	return pose, nil
}

// EndEffectorPosition is shorthand for the last point of ComputePose.
func EndEffectorPosition(chain LinkChain, config Configuration) (r2.Point, error) {
	pose, err := ComputePose(chain, config)
	if err != nil {
		return r2.Point{}, err
	}
	return pose.EndEffector(), nil
}
