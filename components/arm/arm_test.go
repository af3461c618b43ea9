package arm_test

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"go.viam.com/armsim/components/arm"
	"go.viam.com/armsim/components/arm/fake"
	"go.viam.com/armsim/kinematics"
)

func TestCheckDesiredJointPositions(t *testing.T) {
	ctx := context.Background()
	a, err := fake.NewArm(fake.Config{Links: kinematics.LinkChain{1, 2, 3}}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, arm.CheckDesiredJointPositions(ctx, a, kinematics.Configuration{1, 2, 3}), test.ShouldBeNil)
	err = arm.CheckDesiredJointPositions(ctx, a, kinematics.Configuration{1, 2})
	test.That(t, err, test.ShouldWrap, kinematics.ErrShapeMismatch)
	test.That(t, err.Error(), test.ShouldContainSubstring, "number of joints (2) does not match number of links (3)")
}

func TestMoveThrough(t *testing.T) {
	ctx := context.Background()
	a, err := fake.NewArm(fake.Config{Links: kinematics.LinkChain{1, 1}}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	err = arm.MoveThrough(ctx, a, []kinematics.Configuration{{5, 5}, {1}, {9, 9}})
	test.That(t, err, test.ShouldWrap, kinematics.ErrShapeMismatch)
	joints, err := a.JointPositions(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joints, test.ShouldResemble, kinematics.Configuration{5, 5})

	test.That(t, arm.MoveThrough(ctx, a, nil), test.ShouldBeNil)
}
