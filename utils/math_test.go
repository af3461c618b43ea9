package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi), test.ShouldEqual, 180.0)
	test.That(t, RadToDeg(DegToRad(35)), test.ShouldAlmostEqual, 35)
}

func TestWrapDeg(t *testing.T) {
	for _, tc := range []struct {
		in, out float64
	}{
		{0, 0},
		{20, 20},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{-340, 20},
		{540, 180},
		{-179.5, -179.5},
	} {
		test.That(t, WrapDeg(tc.in), test.ShouldAlmostEqual, tc.out)
	}
	test.That(t, math.IsNaN(WrapDeg(math.NaN())), test.ShouldBeTrue)
}

func TestAngleDiffDeg(t *testing.T) {
	test.That(t, AngleDiffDeg(170, -170), test.ShouldEqual, 20.0)
	test.That(t, AngleDiffDeg(-170, 170), test.ShouldEqual, -20.0)
	test.That(t, AngleDiffDeg(0, 180), test.ShouldEqual, 180.0)
	test.That(t, AngleDiffDeg(10, 350), test.ShouldAlmostEqual, -20)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(2, -1, 1), test.ShouldEqual, 1.0)
	test.That(t, Clamp(-2, -1, 1), test.ShouldEqual, -1.0)
	test.That(t, Clamp(0.5, -1, 1), test.ShouldEqual, 0.5)
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
	test.That(t, IsFinite(3), test.ShouldBeTrue)
}
