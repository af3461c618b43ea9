// Package config defines the scenario file that describes an arm, a motion and how to play it,
// along with methods to read, merge and validate it.
package config

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"go.uber.org/multierr"

	"go.viam.com/armsim/kinematics"
	"go.viam.com/armsim/motionplan"
	"go.viam.com/armsim/utils"
)

// defaults used for anything a scenario leaves out.
var (
	defaultLinks = kinematics.LinkChain{7, 10}
	defaultEnd   = kinematics.Configuration{35, 20}
)

const (
	defaultDuration = 3.0
	defaultFPS      = 30.0
)

// Target is a Cartesian end effector goal.
type Target struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point returns the target as a point.
func (t Target) Point() r2.Point {
	return r2.Point{X: t.X, Y: t.Y}
}

// Scenario describes an arm and a single joint space motion.
type Scenario struct {
	Links    kinematics.LinkChain     `json:"links,omitempty" jsonschema:"description=link lengths from the base outward"`
	Start    kinematics.Configuration `json:"start,omitempty" jsonschema:"description=start joint angles in degrees"`
	End      kinematics.Configuration `json:"end,omitempty" jsonschema:"description=end joint angles in degrees, ignored when target is set"`
	Duration float64                  `json:"duration,omitempty" jsonschema:"description=motion duration in seconds"`
	FPS      float64                  `json:"fps,omitempty" jsonschema:"description=frames per second"`
	Easing   string                   `json:"easing,omitempty" jsonschema:"enum=linear,enum=cosine,enum=smoothstep"`
	Target   *Target                  `json:"target,omitempty" jsonschema:"description=end effector goal solved with inverse kinematics"`
	Elbow    string                   `json:"elbow,omitempty" jsonschema:"enum=elbow_up,enum=elbow_down"`
	Clamp    *bool                    `json:"clamp,omitempty" jsonschema:"description=clamp unreachable targets to the workspace (default true)"`
	Strict   bool                     `json:"strict,omitempty" jsonschema:"description=reject unreachable targets when not clamping"`
	Trail    bool                     `json:"trail,omitempty" jsonschema:"description=report the path traced by the end effector"`
}

// Default returns the scenario used when no file is given.
func Default() *Scenario {
	s := &Scenario{}
	s.applyDefaults()
	return s
}

// applyDefaults fills in every field left at its zero value.
func (s *Scenario) applyDefaults() {
	if len(s.Links) == 0 {
		s.Links = append(kinematics.LinkChain(nil), defaultLinks...)
	}
	if s.Start == nil {
		s.Start = make(kinematics.Configuration, len(s.Links))
	}
	if s.End == nil {
		if len(s.Links) == len(defaultEnd) {
			s.End = defaultEnd.Copy()
		} else {
			s.End = make(kinematics.Configuration, len(s.Links))
		}
	}
	if s.Duration == 0 {
		s.Duration = defaultDuration
	}
	if s.FPS == 0 {
		s.FPS = defaultFPS
	}
	if s.Easing == "" {
		s.Easing = motionplan.Linear.String()
	}
	if s.Elbow == "" {
		s.Elbow = kinematics.ElbowUp.String()
	}
	if s.Clamp == nil {
		clamp := true
		s.Clamp = &clamp
	}
}

// Validate returns every problem with the scenario. path names the scenario in the returned
// errors.
func (s *Scenario) Validate(path string) error {
	var err error
	if len(s.Links) == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "links")
	}
	if linkErr := s.Links.Validate(); linkErr != nil {
		err = multierr.Append(err, errors.Wrap(linkErr, path))
	}
	if shapeErr := s.Links.CheckShape(s.Start); shapeErr != nil {
		err = multierr.Append(err, errors.Wrapf(shapeErr, "%s: start", path))
	}
	if s.Target == nil {
		if shapeErr := s.Links.CheckShape(s.End); shapeErr != nil {
			err = multierr.Append(err, errors.Wrapf(shapeErr, "%s: end", path))
		}
	} else {
		if len(s.Links) != 2 {
			err = multierr.Append(err, errors.Wrapf(kinematics.ErrIKRequiresTwoLinks, "%s: target", path))
		}
		if !utils.IsFinite(s.Target.X) || !utils.IsFinite(s.Target.Y) {
			err = multierr.Append(err, errors.Errorf("%s: target must be finite, got (%v, %v)", path, s.Target.X, s.Target.Y))
		}
	}
	for _, a := range append(s.Start.Copy(), s.End...) {
		if !utils.IsFinite(a) {
			err = multierr.Append(err, errors.Errorf("%s: joint angles must be finite, got %v", path, a))
			break
		}
	}
	if !utils.IsFinite(s.Duration) || s.Duration < 0 {
		err = multierr.Append(err, errors.Errorf("%s: duration must be a non-negative number of seconds, got %v", path, s.Duration))
	}
	if !utils.IsFinite(s.FPS) || s.FPS < 0 {
		err = multierr.Append(err, errors.Errorf("%s: fps must be non-negative, got %v", path, s.FPS))
	}
	if _, branchErr := kinematics.ParseBranch(s.Elbow); branchErr != nil {
		err = multierr.Append(err, errors.Wrap(branchErr, path))
	}
	return err
}

// Merge overrides every field set in o.
func (s *Scenario) Merge(o *Scenario) {
	if o == nil {
		return
	}
	if len(o.Links) != 0 {
		s.Links = append(kinematics.LinkChain(nil), o.Links...)
	}
	if o.Start != nil {
		s.Start = o.Start.Copy()
	}
	if o.End != nil {
		s.End = o.End.Copy()
	}
	if o.Duration != 0 {
		s.Duration = o.Duration
	}
	if o.FPS != 0 {
		s.FPS = o.FPS
	}
	if o.Easing != "" {
		s.Easing = o.Easing
	}
	if o.Target != nil {
		target := *o.Target
		s.Target = &target
	}
	if o.Elbow != "" {
		s.Elbow = o.Elbow
	}
	if o.Clamp != nil {
		clamp := *o.Clamp
		s.Clamp = &clamp
	}
	s.Strict = s.Strict || o.Strict
	s.Trail = s.Trail || o.Trail
}

// PlannerOptions returns the timing and easing of the motion. An unknown easing name falls back
// to linear with a warning.
func (s *Scenario) PlannerOptions(logger golog.Logger) *motionplan.PlannerOptions {
	easing, ok := motionplan.ParseEasing(s.Easing)
	if !ok {
		logger.Warnw("unknown easing, using linear", "easing", s.Easing)
	}
	return &motionplan.PlannerOptions{Duration: s.Duration, FPS: s.FPS, Easing: easing}
}

// IKOptions returns the inverse kinematics options of the scenario.
func (s *Scenario) IKOptions() (*kinematics.IKOptions, error) {
	branch, err := kinematics.ParseBranch(s.Elbow)
	if err != nil {
		return nil, err
	}
	return &kinematics.IKOptions{Branch: branch, Clamp: s.Clamp == nil || *s.Clamp, Strict: s.Strict}, nil
}

// Goal returns the end configuration of the motion. When a target is set it is solved with
// inverse kinematics and the result is returned as well.
func (s *Scenario) Goal() (kinematics.Configuration, *kinematics.IKResult, error) {
	if s.Target == nil {
		return s.End.Copy(), nil, nil
	}
	opts, err := s.IKOptions()
	if err != nil {
		return nil, nil, err
	}
	goal, res, err := kinematics.SolveChain(s.Links, s.Target.Point(), opts)
	if err != nil {
		return nil, nil, err
	}
	return goal, &res, nil
}

// Plan plans the motion of the scenario.
func (s *Scenario) Plan(logger golog.Logger) (motionplan.Trajectory, *kinematics.IKResult, error) {
	goal, res, err := s.Goal()
	if err != nil {
		return nil, nil, err
	}
	traj, err := motionplan.PlanJointMotion(s.Start, goal, s.PlannerOptions(logger))
	if err != nil {
		return nil, nil, err
	}
	return traj, res, nil
}
