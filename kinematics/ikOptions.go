package kinematics

import (
	"github.com/golang/geo/r2"
)

// IKOptions controls how SolveChain treats a Cartesian target.
type IKOptions struct {
	// Branch picks the elbow solution.
	Branch Branch `json:"elbow"`

	// Clamp moves unreachable targets onto the nearest workspace boundary before solving.
	Clamp bool `json:"clamp"`

	// Strict rejects targets outside the workspace. It only has an effect when Clamp is off,
	// since a clamped target is always reachable.
	Strict bool `json:"strict"`
}

// NewBasicIKOptions returns the defaults: elbow up, clamping on, not strict.
func NewBasicIKOptions() *IKOptions {
	return &IKOptions{Branch: ElbowUp, Clamp: true}
}

// IKResult describes the target that was actually solved for.
type IKResult struct {
	Requested r2.Point
	Solved    r2.Point
	Clamped   bool
	Solution  Solution
}

// SolveChain solves inverse kinematics for a two link chain. A nil opts uses NewBasicIKOptions.
// Without Strict, a target outside the workspace yields the nearest boundary solution.
func SolveChain(chain LinkChain, target r2.Point, opts *IKOptions) (Configuration, IKResult, error) {
	if opts == nil {
		opts = NewBasicIKOptions()
	}
	if len(chain) != 2 {
		return nil, IKResult{}, ErrIKRequiresTwoLinks
	}
	if err := chain.Validate(); err != nil {
		return nil, IKResult{}, err
	}

	l1, l2 := chain[0], chain[1]
	ws := NewWorkspace(l1, l2)
	res := IKResult{Requested: target, Solved: target}
	switch {
	case opts.Clamp:
		res.Solved, res.Clamped = ws.Clamp(target)
	case opts.Strict && !ws.Contains(target):
		return nil, res, NewUnreachableTargetError(target.Norm(), ws.Min, ws.Max)
	}

	res.Solution = Solve(res.Solved, l1, l2, opts.Branch)
	return res.Solution.Configuration(), res, nil
}
