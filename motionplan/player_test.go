package motionplan

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/armsim/kinematics"
)

func TestPlayer(t *testing.T) {
	traj, err := Interpolate(kinematics.Configuration{0}, kinematics.Configuration{30}, 1, 2, Linear)
	test.That(t, err, test.ShouldBeNil)

	p := NewPlayer(traj)
	test.That(t, p.Len(), test.ShouldEqual, 3)
	test.That(t, p.Remaining(), test.ShouldEqual, 3)
	test.That(t, p.Done(), test.ShouldBeFalse)

	var got []float64
	for {
		frame, ok := p.Next()
		if !ok {
			break
		}
		got = append(got, frame[0])
	}
	test.That(t, got, test.ShouldResemble, []float64{0, 15, 30})
	test.That(t, p.Done(), test.ShouldBeTrue)
	test.That(t, p.Index(), test.ShouldEqual, 3)
	test.That(t, p.Remaining(), test.ShouldEqual, 0)

	frame, ok := p.Next()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, frame, test.ShouldBeNil)

	p.Reset()
	test.That(t, p.Index(), test.ShouldEqual, 0)
	frame, ok = p.Next()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, frame, test.ShouldResemble, kinematics.Configuration{0})
	test.That(t, p.Trajectory(), test.ShouldResemble, traj)

	empty := NewPlayer(nil)
	test.That(t, empty.Done(), test.ShouldBeTrue)
	_, ok = empty.Next()
	test.That(t, ok, test.ShouldBeFalse)
}
