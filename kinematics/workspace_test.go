package kinematics

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestWorkspace(t *testing.T) {
	ws := NewWorkspace(7, 10)
	test.That(t, ws, test.ShouldResemble, Workspace{Min: 3, Max: 17})
	test.That(t, NewWorkspace(10, 7), test.ShouldResemble, ws)
	test.That(t, ws.Contains(r2.Point{X: 10, Y: 5}), test.ShouldBeTrue)
	test.That(t, ws.Contains(r2.Point{X: 17}), test.ShouldBeTrue)
	test.That(t, ws.Contains(r2.Point{X: 3}), test.ShouldBeTrue)
	test.That(t, ws.Contains(r2.Point{X: 2}), test.ShouldBeFalse)
	test.That(t, ws.Contains(r2.Point{Y: 18}), test.ShouldBeFalse)
}

func TestClampToWorkspace(t *testing.T) {
	inside := r2.Point{X: 10, Y: 5}
	p, clamped := ClampToWorkspace(inside, 7, 10)
	test.That(t, clamped, test.ShouldBeFalse)
	test.That(t, p, test.ShouldResemble, inside)

	p, clamped = ClampToWorkspace(r2.Point{X: 30, Y: 40}, 7, 10)
	test.That(t, clamped, test.ShouldBeTrue)
	test.That(t, p.Norm(), test.ShouldAlmostEqual, 17)
	test.That(t, p.X, test.ShouldAlmostEqual, 17*0.6)
	test.That(t, p.Y, test.ShouldAlmostEqual, 17*0.8)

	p, clamped = ClampToWorkspace(r2.Point{X: 0, Y: -1}, 7, 10)
	test.That(t, clamped, test.ShouldBeTrue)
	test.That(t, p.X, test.ShouldAlmostEqual, 0)
	test.That(t, p.Y, test.ShouldAlmostEqual, -3)

	// Boundary points are not reported as clamped.
	p, clamped = ClampToWorkspace(r2.Point{X: 17}, 7, 10)
	test.That(t, clamped, test.ShouldBeFalse)
	test.That(t, p, test.ShouldResemble, r2.Point{X: 17})
}

func TestClampAtOrigin(t *testing.T) {
	p, clamped := ClampToWorkspace(r2.Point{}, 7, 10)
	test.That(t, clamped, test.ShouldBeTrue)
	test.That(t, p, test.ShouldResemble, r2.Point{X: 3, Y: 0})

	// Equal links reach the base, so the origin is already feasible.
	p, clamped = ClampToWorkspace(r2.Point{}, 5, 5)
	test.That(t, clamped, test.ShouldBeFalse)
	test.That(t, p, test.ShouldResemble, r2.Point{})
}

func TestClampIdempotent(t *testing.T) {
	for _, target := range []r2.Point{
		{X: 30, Y: 40},
		{X: -0.5, Y: 0.5},
		{},
		{X: 12, Y: -3},
		{X: -100, Y: 1e-3},
	} {
		once, _ := ClampToWorkspace(target, 7, 10)
		twice, clamped := ClampToWorkspace(once, 7, 10)
		test.That(t, clamped, test.ShouldBeFalse)
		test.That(t, twice, test.ShouldResemble, once)
	}
}

func TestChainWorkspace(t *testing.T) {
	test.That(t, LinkChain{}.Workspace(), test.ShouldResemble, Workspace{})
	test.That(t, LinkChain{7, 10}.Workspace(), test.ShouldResemble, NewWorkspace(7, 10))
	test.That(t, LinkChain{10, 7}.Workspace(), test.ShouldResemble, NewWorkspace(7, 10))
	test.That(t, LinkChain{2, 3, 4}.Workspace(), test.ShouldResemble, Workspace{Min: 0, Max: 9})
	test.That(t, LinkChain{10, 2, 3}.Workspace(), test.ShouldResemble, Workspace{Min: 5, Max: 15})
}
