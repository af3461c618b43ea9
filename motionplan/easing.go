package motionplan

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/armsim/utils"
)

// Easing reparameterizes linear progress in [0, 1] to shape the velocity profile of a motion.
// Every built in easing maps 0 to 0 and 1 to 1.
type Easing int

const (
	// Linear moves at constant joint velocity.
	Linear Easing = iota
	// Cosine starts and stops with zero velocity along a half cosine wave.
	Cosine
	// Smoothstep starts and stops with zero velocity along the cubic Hermite curve 3t²-2t³.
	Smoothstep
)

// Easings lists every built in easing.
var Easings = []Easing{Linear, Cosine, Smoothstep}

func (e Easing) String() string {
	switch e {
	case Linear:
		return "linear"
	case Cosine:
		return "cosine"
	case Smoothstep:
		return "smoothstep"
	default:
		return "unknown"
	}
}

// ParseEasing looks an easing up by name. Unrecognized names fall back to Linear with ok false,
// so callers may warn but are never forced to fail.
func ParseEasing(name string) (e Easing, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "":
		return Linear, true
	case "cosine":
		return Cosine, true
	case "smoothstep":
		return Smoothstep, true
	default:
		return Linear, false
	}
}

// MarshalText encodes the easing by name.
func (e Easing) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an easing name. Unlike ParseEasing, unknown names are an error.
func (e *Easing) UnmarshalText(text []byte) error {
	parsed, ok := ParseEasing(string(text))
	if !ok {
		return errors.Errorf("unknown easing %q", string(text))
	}
	*e = parsed
	return nil
}

// Apply maps progress alpha to eased progress. Alpha is clamped to [0, 1] first. Values that are
// not one of the declared easings behave as Linear.
func (e Easing) Apply(alpha float64) float64 {
	p := utils.Clamp(alpha, 0, 1)
	switch e {
	case Cosine:
		return 0.5 - 0.5*math.Cos(math.Pi*p)
	case Smoothstep:
		return 3*p*p - 2*p*p*p
	case Linear:
		return p
	default:
		return p
	}
}
