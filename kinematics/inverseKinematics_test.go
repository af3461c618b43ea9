package kinematics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/armsim/utils"
)

func TestSolveRoundTrip(t *testing.T) {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		l1 := 0.5 + rnd.Float64()*20
		l2 := 0.5 + rnd.Float64()*20
		ws := NewWorkspace(l1, l2)
		r := ws.Min + (ws.Max-ws.Min)*(0.001+0.998*rnd.Float64())
		phi := (rnd.Float64()*2 - 1) * math.Pi
		target := r2.Point{X: r * math.Cos(phi), Y: r * math.Sin(phi)}

		up, down := SolveAll(target, l1, l2)
		for _, sol := range []Solution{up, down} {
			ee, err := EndEffectorPosition(LinkChain{l1, l2}, sol.Configuration())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ee.X, test.ShouldAlmostEqual, target.X, 1e-6)
			test.That(t, ee.Y, test.ShouldAlmostEqual, target.Y, 1e-6)
			test.That(t, sol.Shoulder, test.ShouldBeGreaterThan, -180)
			test.That(t, sol.Shoulder, test.ShouldBeLessThanOrEqualTo, 180)
		}
	}
}

func TestSolveBranches(t *testing.T) {
	target := r2.Point{X: 10, Y: 10}
	up, down := SolveAll(target, 7, 10)

	// Elbow angles are negatives of each other.
	test.That(t, utils.WrapDeg(up.Elbow+down.Elbow), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, up.Elbow, test.ShouldBeLessThan, 0)
	test.That(t, down.Elbow, test.ShouldBeGreaterThan, 0)

	test.That(t, Solve(target, 7, 10, ElbowUp), test.ShouldResemble, up)
	test.That(t, Solve(target, 7, 10, ElbowDown), test.ShouldResemble, down)

	var defaultBranch Branch
	test.That(t, Solve(target, 7, 10, defaultBranch), test.ShouldResemble, up)
}

func TestSolveKnownTargets(t *testing.T) {
	sol := Solve(r2.Point{X: 17, Y: 0}, 7, 10, ElbowUp)
	test.That(t, sol.Shoulder, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, sol.Elbow, test.ShouldAlmostEqual, 0, 1e-9)

	sol = Solve(r2.Point{X: 0, Y: 17}, 7, 10, ElbowDown)
	test.That(t, sol.Shoulder, test.ShouldAlmostEqual, 90, 1e-6)
	test.That(t, sol.Elbow, test.ShouldAlmostEqual, 0, 1e-6)

	// Equal links at a right angle: shoulder 0, elbow 90 on the elbow down branch.
	sol = Solve(r2.Point{X: 5, Y: 5}, 5, 5, ElbowDown)
	test.That(t, sol.Shoulder, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, sol.Elbow, test.ShouldAlmostEqual, 90, 1e-9)
}

func TestSolveOutsideWorkspace(t *testing.T) {
	// Too far: the arm stretches straight towards the target.
	up, down := SolveAll(r2.Point{X: 0, Y: 30}, 7, 10)
	for _, sol := range []Solution{up, down} {
		test.That(t, sol.Shoulder, test.ShouldAlmostEqual, 90, 1e-9)
		test.That(t, sol.Elbow, test.ShouldAlmostEqual, 0, 1e-9)
	}

	// Too close: the arm folds completely.
	sol := Solve(r2.Point{X: 1, Y: 0}, 7, 10, ElbowDown)
	test.That(t, math.Abs(sol.Elbow), test.ShouldAlmostEqual, 180, 1e-9)
	ee, err := EndEffectorPosition(LinkChain{7, 10}, sol.Configuration())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ee.Norm(), test.ShouldAlmostEqual, 3, 1e-9)

	// Exact boundary and zero length links never produce NaN.
	for _, tc := range []struct {
		target r2.Point
		l1, l2 float64
	}{
		{r2.Point{X: 17, Y: 0}, 7, 10},
		{r2.Point{X: 0, Y: -3}, 7, 10},
		{r2.Point{X: 0, Y: 0}, 7, 10},
		{r2.Point{X: 0, Y: 0}, 0, 0},
		{r2.Point{X: 4, Y: 0}, 4, 0},
	} {
		up, down := SolveAll(tc.target, tc.l1, tc.l2)
		for _, v := range []float64{up.Shoulder, up.Elbow, down.Shoulder, down.Elbow} {
			test.That(t, math.IsNaN(v), test.ShouldBeFalse)
		}
	}
}

func TestParseBranch(t *testing.T) {
	for in, want := range map[string]Branch{
		"":           ElbowUp,
		"elbow_up":   ElbowUp,
		"Elbow-Up":   ElbowUp,
		"elbow_down": ElbowDown,
		"down":       ElbowDown,
	} {
		b, err := ParseBranch(in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, b, test.ShouldEqual, want)
	}
	_, err := ParseBranch("sideways")
	test.That(t, errors.Is(err, ErrUnknownBranch), test.ShouldBeTrue)
	test.That(t, ElbowDown.String(), test.ShouldEqual, "elbow_down")
	test.That(t, Branch(7).String(), test.ShouldEqual, "unknown")
}

func TestSolveChain(t *testing.T) {
	chain := LinkChain{7, 10}

	config, res, err := SolveChain(chain, r2.Point{X: 10, Y: 10}, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Clamped, test.ShouldBeFalse)
	test.That(t, config, test.ShouldResemble, res.Solution.Configuration())
	test.That(t, res.Solution, test.ShouldResemble, Solve(r2.Point{X: 10, Y: 10}, 7, 10, ElbowUp))

	config, res, err = SolveChain(chain, r2.Point{X: 30, Y: 0}, &IKOptions{Branch: ElbowDown, Clamp: true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Clamped, test.ShouldBeTrue)
	test.That(t, res.Requested, test.ShouldResemble, r2.Point{X: 30, Y: 0})
	test.That(t, res.Solved.X, test.ShouldAlmostEqual, 17)
	ee, err := EndEffectorPosition(chain, config)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ee.X, test.ShouldAlmostEqual, 17, 1e-9)

	_, _, err = SolveChain(chain, r2.Point{X: 30, Y: 0}, &IKOptions{Strict: true})
	test.That(t, errors.Is(err, ErrTargetUnreachable), test.ShouldBeTrue)

	// Permissive without clamping: boundary solution, no error.
	_, res, err = SolveChain(chain, r2.Point{X: 30, Y: 0}, &IKOptions{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Clamped, test.ShouldBeFalse)
	test.That(t, res.Solution.Elbow, test.ShouldAlmostEqual, 0, 1e-9)

	_, _, err = SolveChain(LinkChain{1, 2, 3}, r2.Point{X: 1}, nil)
	test.That(t, err, test.ShouldBeError, ErrIKRequiresTwoLinks)

	_, _, err = SolveChain(LinkChain{1, -2}, r2.Point{X: 1}, nil)
	test.That(t, errors.Is(err, ErrInvalidLinkLength), test.ShouldBeTrue)
}
