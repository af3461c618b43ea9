// Package motionplan generates joint space trajectories for planar arms and plays them back one
// frame at a time.
package motionplan

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/armsim/kinematics"
	"go.viam.com/armsim/utils"
)

// Trajectory is a sequence of joint configurations sampled at a fixed time step. The first frame
// is the start configuration and the last frame is the goal.
type Trajectory []kinematics.Configuration

// FrameCount returns N = max(1, round(duration * fps)), rounding halves to even. Non finite
// products also give 1.
func FrameCount(duration, fps float64) int {
	n := math.RoundToEven(duration * fps)
	if !utils.IsFinite(n) || n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Interpolate samples the motion from start to end in N+1 frames, where N is FrameCount of
// duration and fps. Each joint travels the shortest way around the circle, so the last frame
// equals start plus the wrapped difference, which may lie outside (-180, 180].
func Interpolate(
	start, end kinematics.Configuration,
	duration, fps float64,
	easing Easing,
) (Trajectory, error) {
	if len(start) == 0 || len(end) == 0 {
		return nil, kinematics.ErrEmptyConfiguration
	}
	if len(start) != len(end) {
		return nil, kinematics.NewMismatchedConfigurationsError(len(start), len(end))
	}

	n := FrameCount(duration, fps)
	deltas := make([]float64, len(start))
	for i := range start {
		deltas[i] = utils.AngleDiffDeg(start[i], end[i])
	}

	traj := make(Trajectory, 0, n+1)
	for k := 0; k <= n; k++ {
		s := easing.Apply(float64(k) / float64(n))
		frame := make(kinematics.Configuration, len(start))
		for i, s0 := range start {
			frame[i] = s0 + s*deltas[i]
		}
		traj = append(traj, frame)
	}
	return traj, nil
}

// PlanJointMotion interpolates from start to end using opts. A nil opts uses
// NewBasicPlannerOptions.
func PlanJointMotion(start, end kinematics.Configuration, opts *PlannerOptions) (Trajectory, error) {
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	return Interpolate(start, end, opts.Duration, opts.FPS, opts.Easing)
}

// Start returns the first frame, or nil for an empty trajectory.
func (traj Trajectory) Start() kinematics.Configuration {
	if len(traj) == 0 {
		return nil
	}
	return traj[0]
}

// Goal returns the last frame, or nil for an empty trajectory.
func (traj Trajectory) Goal() kinematics.Configuration {
	if len(traj) == 0 {
		return nil
	}
	return traj[len(traj)-1]
}

// Poses runs forward kinematics on every frame.
func (traj Trajectory) Poses(chain kinematics.LinkChain) ([]kinematics.Pose, error) {
	poses := make([]kinematics.Pose, 0, len(traj))
	for _, frame := range traj {
		pose, err := kinematics.ComputePose(chain, frame)
		if err != nil {
			return nil, err
		}
		poses = append(poses, pose)
	}
	return poses, nil
}

// EndEffectorPath returns the end effector position of every frame.
func (traj Trajectory) EndEffectorPath(chain kinematics.LinkChain) ([]r2.Point, error) {
	path := make([]r2.Point, 0, len(traj))
	for _, frame := range traj {
		ee, err := kinematics.EndEffectorPosition(chain, frame)
		if err != nil {
			return nil, err
		}
		path = append(path, ee)
	}
	return path, nil
}

// PathLength returns the summed distance between consecutive points.
func PathLength(path []r2.Point) float64 {
	total := 0.
	for i := 1; i < len(path); i++ {
		total += path[i].Sub(path[i-1]).Norm()
	}
	return total
}
