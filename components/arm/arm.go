// Package arm defines the API of a planar serial arm that can be moved by joint angles or by a
// Cartesian end effector target.
package arm

import (
	"context"

	"github.com/golang/geo/r2"

	"go.viam.com/armsim/kinematics"
)

// Arm is a planar serial arm.
type Arm interface {
	// Chain returns the link lengths of the arm.
	Chain() kinematics.LinkChain

	// JointPositions returns the current joint angles in degrees, each in (-180, 180].
	JointPositions(ctx context.Context) (kinematics.Configuration, error)

	// Pose returns the position of every joint for the current joint angles.
	Pose(ctx context.Context) (kinematics.Pose, error)

	// EndPosition returns the current end effector position.
	EndPosition(ctx context.Context) (r2.Point, error)

	// MoveToJointPositions moves to the given joint angles and blocks until the motion completes,
	// is stopped, or ctx is done.
	MoveToJointPositions(ctx context.Context, target kinematics.Configuration) error

	// MoveToPosition moves the end effector to the given point and blocks like
	// MoveToJointPositions.
	MoveToPosition(ctx context.Context, target r2.Point) error

	// MoveThroughJointPositions moves through each configuration in order.
	MoveThroughJointPositions(ctx context.Context, positions []kinematics.Configuration) error

	// IsMoving reports whether a motion is in progress.
	IsMoving(ctx context.Context) (bool, error)

	// Stop halts the motion in progress, if any.
	Stop(ctx context.Context) error

	// Close releases the resources of the arm. Motions in progress fail.
	Close(ctx context.Context) error
}

// CheckDesiredJointPositions validates that the desired joint positions fit the arm's chain.
func CheckDesiredJointPositions(ctx context.Context, a Arm, desired kinematics.Configuration) error {
	return a.Chain().CheckShape(desired)
}

// MoveThrough moves a through positions with one MoveToJointPositions call each.
func MoveThrough(ctx context.Context, a Arm, positions []kinematics.Configuration) error {
	for _, goal := range positions {
		if err := a.MoveToJointPositions(ctx, goal); err != nil {
			return err
		}
	}
	return nil
}
