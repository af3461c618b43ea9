// Package fake implements a fake arm that jumps straight to every target.
package fake

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/armsim/components/arm"
	"go.viam.com/armsim/kinematics"
)

// Config is used for converting config attributes.
type Config struct {
	Links kinematics.LinkChain `json:"links"`

	// IK controls MoveToPosition. Defaults to kinematics.NewBasicIKOptions.
	IK *kinematics.IKOptions `json:"ik,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate() error {
	if len(conf.Links) == 0 {
		return errors.New("fake arm built with zero links, give at least one link length")
	}
	return conf.Links.Validate()
}

// NewArm returns a new fake arm with every joint at zero.
func NewArm(conf Config, logger golog.Logger) (*Arm, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	ik := kinematics.NewBasicIKOptions()
	if conf.IK != nil {
		ik = conf.IK
	}
	return &Arm{
		chain:  append(kinematics.LinkChain(nil), conf.Links...),
		ik:     *ik,
		joints: make(kinematics.Configuration, len(conf.Links)),
		logger: logger,
	}, nil
}

// Arm is a fake arm that can simply read and set joints.
type Arm struct {
	CloseCount int
	logger     golog.Logger

	chain kinematics.LinkChain
	ik    kinematics.IKOptions

	mu         sync.RWMutex
	joints     kinematics.Configuration
	lastResult *kinematics.IKResult
}

// Chain returns the link lengths.
func (a *Arm) Chain() kinematics.LinkChain {
	return a.chain
}

// EndPosition returns the end effector position of the set joints.
func (a *Arm) EndPosition(ctx context.Context) (r2.Point, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return kinematics.EndEffectorPosition(a.chain, a.joints)
}

// Pose returns the joint positions of the set joints.
func (a *Arm) Pose(ctx context.Context) (kinematics.Pose, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return kinematics.ComputePose(a.chain, a.joints)
}

// MoveToPosition solves inverse kinematics for target and sets the joints to the solution.
func (a *Arm) MoveToPosition(ctx context.Context, target r2.Point) error {
	joints, res, err := kinematics.SolveChain(a.chain, target, &a.ik)
	if err != nil {
		return errors.Wrap(err, "cannot move arm")
	}
	if res.Clamped {
		a.logger.Debugw("target clamped to workspace", "from", res.Requested.String(), "to", res.Solved.String())
	}
	if err := a.MoveToJointPositions(ctx, joints); err != nil {
		return err
	}
	a.mu.Lock()
	a.lastResult = &res
	a.mu.Unlock()
	return nil
}

// LastIKResult returns the result of the most recent MoveToPosition, or nil.
func (a *Arm) LastIKResult() *kinematics.IKResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastResult
}

// MoveToJointPositions sets the joints.
func (a *Arm) MoveToJointPositions(ctx context.Context, joints kinematics.Configuration) error {
	if err := arm.CheckDesiredJointPositions(ctx, a, joints); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.joints = joints.Wrapped()
	return nil
}

// MoveThroughJointPositions moves the fake arm through the given inputs.
func (a *Arm) MoveThroughJointPositions(ctx context.Context, positions []kinematics.Configuration) error {
	return arm.MoveThrough(ctx, a, positions)
}

// JointPositions returns joints.
func (a *Arm) JointPositions(ctx context.Context) (kinematics.Configuration, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.joints.Copy(), nil
}

// Stop doesn't do anything for a fake arm.
func (a *Arm) Stop(ctx context.Context) error {
	return nil
}

// IsMoving is always false for a fake arm.
func (a *Arm) IsMoving(ctx context.Context) (bool, error) {
	return false, nil
}

// Close does nothing.
func (a *Arm) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.CloseCount++
	return nil
}
