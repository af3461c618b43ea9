package kinematics

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch is matched by every error reporting that a configuration does not have one
	// angle per link, or that two configurations differ in length.
	ErrShapeMismatch = errors.New("configuration shape mismatch")

	// ErrEmptyConfiguration is returned when a configuration with no joints is supplied where at
	// least one joint is required.
	ErrEmptyConfiguration = errors.New("configuration must not be empty")

	// ErrInvalidLinkLength is matched by errors for negative, NaN or infinite link lengths.
	ErrInvalidLinkLength = errors.New("link lengths must be finite and non-negative")

	// ErrIKRequiresTwoLinks is returned when closed form inverse kinematics is requested for a
	// chain that does not have exactly two links.
	ErrIKRequiresTwoLinks = errors.New("inverse kinematics supports exactly two links")

	// ErrTargetUnreachable is returned by strict inverse kinematics for targets outside the
	// workspace.
	ErrTargetUnreachable = errors.New("target is outside the reachable workspace")

	// ErrUnknownBranch is matched by errors from ParseBranch.
	ErrUnknownBranch = errors.New("unknown elbow branch")
)

// NewIncorrectDoFError returns an error for a configuration of length got paired with
// something expecting want joints.
func NewIncorrectDoFError(got, want int) error {
	return errors.Wrapf(ErrShapeMismatch, "number of joints (%d) does not match number of links (%d)", got, want)
}

// NewMismatchedConfigurationsError returns an error for start and end configurations of different lengths.
func NewMismatchedConfigurationsError(start, end int) error {
	return errors.Wrapf(ErrShapeMismatch, "start has %d joints but end has %d", start, end)
}

// NewInvalidLinkLengthError returns an error describing the offending link.
func NewInvalidLinkLengthError(idx int, length float64) error {
	return errors.Wrapf(ErrInvalidLinkLength, "link %d has length %v", idx, length)
}

// NewUnreachableTargetError returns an error for a target at distance r from the base when only
// [rMin, rMax] is reachable.
func NewUnreachableTargetError(r, rMin, rMax float64) error {
	return errors.Wrapf(ErrTargetUnreachable, "distance %.6g not in [%.6g, %.6g]", r, rMin, rMax)
}
