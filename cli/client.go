package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/armsim/components/arm/fake"
	"go.viam.com/armsim/components/arm/sim"
	"go.viam.com/armsim/config"
	"go.viam.com/armsim/kinematics"
	"go.viam.com/armsim/motionplan"
	"go.viam.com/armsim/utils"
)

// point is the JSON form of a position.
type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(p r2.Point) point {
	return point{X: p.X, Y: p.Y}
}

func toPoints(ps []r2.Point) []point {
	return lo.Map(ps, func(p r2.Point, _ int) point { return toPoint(p) })
}

// scenarioFromFlags loads the scenario file named by the global flag, if any, and applies the
// flags set on the command on top of it.
func scenarioFromFlags(c *cli.Context) (*config.Scenario, error) {
	logger := loggerFrom(c)
	path := c.String(generalFlagScenario)
	s := config.Default()
	if path != "" {
		read, err := config.Read(path, logger)
		if err != nil {
			return nil, err
		}
		s = read
	} else {
		path = "flags"
	}

	overrides := &config.Scenario{
		Duration: c.Float64(planFlagDuration),
		FPS:      c.Float64(planFlagFPS),
		Easing:   c.String(planFlagEasing),
		Elbow:    c.String(ikFlagElbow),
		Strict:   c.Bool(ikFlagStrict),
		Trail:    c.Bool(planFlagTrail),
	}
	if c.IsSet(armFlagLinks) {
		overrides.Links = c.Float64Slice(armFlagLinks)
	}
	for _, name := range []string{planFlagStart, armFlagAngles} {
		if c.IsSet(name) {
			overrides.Start = c.Float64Slice(name)
		}
	}
	if c.IsSet(planFlagEnd) {
		overrides.End = c.Float64Slice(planFlagEnd)
	}
	if c.IsSet(planFlagTargetX) || c.IsSet(planFlagTargetY) {
		overrides.Target = &config.Target{X: c.Float64(planFlagTargetX), Y: c.Float64(planFlagTargetY)}
	}
	if c.Bool(ikFlagNoClamp) {
		clamp := false
		overrides.Clamp = &clamp
	}
	s.Merge(overrides)

	// angles left at their defaults follow a change in the number of links
	if len(overrides.Links) != 0 {
		if overrides.Start == nil && len(s.Start) != len(s.Links) {
			s.Start = make(kinematics.Configuration, len(s.Links))
		}
		if overrides.End == nil && len(s.End) != len(s.Links) {
			s.End = make(kinematics.Configuration, len(s.Links))
		}
	}

	if err := s.Validate(path); err != nil {
		return nil, err
	}
	return s, nil
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatValues(values []float64) string {
	return strings.Join(lo.Map(values, func(v float64, _ int) string { return fmt.Sprintf("%.2f", v) }), ", ")
}

func printClamp(w io.Writer, res *kinematics.IKResult) {
	if res != nil && res.Clamped {
		//nolint:errcheck
		color.New(color.FgYellow).Fprintf(w, "target (%.2f, %.2f) clamped to (%.2f, %.2f)\n",
			res.Requested.X, res.Requested.Y, res.Solved.X, res.Solved.Y)
	}
}

type fkOutput struct {
	Links       kinematics.LinkChain     `json:"links"`
	Angles      kinematics.Configuration `json:"angles"`
	Joints      []point                  `json:"joints"`
	EndEffector point                    `json:"end_effector"`
}

// ForwardKinematicsAction prints the position of every joint of the arm.
func ForwardKinematicsAction(c *cli.Context) error {
	s, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	pose, err := kinematics.ComputePose(s.Links, s.Start)
	if err != nil {
		return err
	}

	if c.Bool(generalFlagJSON) {
		return writeJSON(c.App.Writer, fkOutput{
			Links:       s.Links,
			Angles:      s.Start,
			Joints:      toPoints(pose),
			EndEffector: toPoint(pose.EndEffector()),
		})
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "X", "Y"})
	for i, p := range pose {
		name := fmt.Sprintf("joint %d", i)
		switch i {
		case 0:
			name = "base"
		case len(pose) - 1:
			name = "end effector"
		}
		t.AppendRow([]interface{}{i, name, fmt.Sprintf("%.4f", p.X), fmt.Sprintf("%.4f", p.Y)})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

type ikSolution struct {
	Branch      string  `json:"branch"`
	Shoulder    float64 `json:"shoulder"`
	Elbow       float64 `json:"elbow"`
	EndEffector point   `json:"end_effector"`
	Chosen      bool    `json:"chosen"`
}

type ikOutput struct {
	Requested point        `json:"requested"`
	Solved    point        `json:"solved"`
	Clamped   bool         `json:"clamped"`
	Solutions []ikSolution `json:"solutions"`
}

// InverseKinematicsAction moves a fake arm to the requested point and prints the joint angles it
// took.
func InverseKinematicsAction(c *cli.Context) error {
	s, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	var target r2.Point
	switch {
	case c.IsSet(ikFlagX) || c.IsSet(ikFlagY):
		target = r2.Point{X: c.Float64(ikFlagX), Y: c.Float64(ikFlagY)}
	case s.Target != nil:
		target = s.Target.Point()
	default:
		return errors.Errorf("no target given, pass --%s and --%s or set target in the scenario", ikFlagX, ikFlagY)
	}
	opts, err := s.IKOptions()
	if err != nil {
		return err
	}

	logger := loggerFrom(c)
	a, err := fake.NewArm(fake.Config{Links: s.Links, IK: opts}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(c.Context); err != nil {
			logger.Debugw("failed to close arm", "error", err)
		}
	}()
	if err := a.MoveToPosition(c.Context, target); err != nil {
		return err
	}
	res := a.LastIKResult()

	candidates := []kinematics.Branch{opts.Branch}
	if c.Bool(ikFlagAll) {
		candidates = []kinematics.Branch{kinematics.ElbowUp, kinematics.ElbowDown}
	}
	out := ikOutput{Requested: toPoint(res.Requested), Solved: toPoint(res.Solved), Clamped: res.Clamped}
	for _, branch := range candidates {
		sol := kinematics.Solve(res.Solved, s.Links[0], s.Links[1], branch)
		end, err := kinematics.EndEffectorPosition(s.Links, sol.Configuration())
		if err != nil {
			return err
		}
		out.Solutions = append(out.Solutions, ikSolution{
			Branch:      branch.String(),
			Shoulder:    sol.Shoulder,
			Elbow:       sol.Elbow,
			EndEffector: toPoint(end),
			Chosen:      branch == opts.Branch,
		})
	}

	if c.Bool(generalFlagJSON) {
		return writeJSON(c.App.Writer, out)
	}

	printClamp(c.App.Writer, res)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Branch", "Shoulder", "Elbow", "End X", "End Y", "Chosen"})
	for _, sol := range out.Solutions {
		chosen := ""
		if sol.Chosen {
			chosen = "*"
		}
		t.AppendRow([]interface{}{
			sol.Branch,
			fmt.Sprintf("%.2f", sol.Shoulder),
			fmt.Sprintf("%.2f", sol.Elbow),
			fmt.Sprintf("%.4f", sol.EndEffector.X),
			fmt.Sprintf("%.4f", sol.EndEffector.Y),
			chosen,
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

type planFrame struct {
	Index       int                      `json:"index"`
	Time        float64                  `json:"time"`
	Joints      kinematics.Configuration `json:"joints"`
	EndEffector point                    `json:"end_effector"`
}

type planOutput struct {
	Links      kinematics.LinkChain `json:"links"`
	Easing     string               `json:"easing"`
	IK         *ikOutput            `json:"ik,omitempty"`
	Frames     []planFrame          `json:"frames"`
	PathLength *float64             `json:"path_length,omitempty"`
}

// frameTime returns the time of frame i of a trajectory with n frames that lasts duration.
func frameTime(i, n int, duration float64) float64 {
	if n < 2 {
		return 0
	}
	return duration * float64(i) / float64(n-1)
}

// PlanAction prints every frame of the motion described by the scenario.
func PlanAction(c *cli.Context) error {
	s, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	logger := loggerFrom(c)
	opts := s.PlannerOptions(logger)
	traj, res, err := s.Plan(logger)
	if err != nil {
		return err
	}
	path, err := traj.EndEffectorPath(s.Links)
	if err != nil {
		return err
	}

	out := planOutput{Links: s.Links, Easing: opts.Easing.String()}
	if res != nil {
		out.IK = &ikOutput{Requested: toPoint(res.Requested), Solved: toPoint(res.Solved), Clamped: res.Clamped}
	}
	for i, frame := range traj {
		out.Frames = append(out.Frames, planFrame{
			Index:       i,
			Time:        frameTime(i, len(traj), opts.Duration),
			Joints:      frame,
			EndEffector: toPoint(path[i]),
		})
	}
	if s.Trail {
		length := motionplan.PathLength(path)
		out.PathLength = &length
	}

	if c.Bool(generalFlagJSON) {
		return writeJSON(c.App.Writer, out)
	}

	printClamp(c.App.Writer, res)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Frame", "Time (s)", "Joints", "End X", "End Y"})
	for _, f := range out.Frames {
		t.AppendRow([]interface{}{
			f.Index,
			fmt.Sprintf("%.3f", f.Time),
			formatValues(f.Joints),
			fmt.Sprintf("%.4f", f.EndEffector.X),
			fmt.Sprintf("%.4f", f.EndEffector.Y),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	if out.PathLength != nil {
		printf(c.App.Writer, "path length: %.4f", *out.PathLength)
	}
	return nil
}

// PlayAction plays the motion on a simulated arm and prints each frame as the arm reaches it.
func PlayAction(c *cli.Context) error {
	s, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	logger := loggerFrom(c)
	goal, res, err := s.Goal()
	if err != nil {
		return err
	}
	a, err := sim.NewArm(sim.Config{
		Links:   s.Links,
		Initial: s.Start,
		Planner: s.PlannerOptions(logger),
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Debugw("failed to close arm", "error", err)
		}
	}()

	m, err := a.StartMove(c.Context, goal)
	if err != nil {
		return err
	}
	w := c.App.Writer
	printClamp(w, res)
	printf(w, "playing %d frames", m.Frames())

	var trail []r2.Point
	frame := 0
	emit := func() {
		joints, err := a.JointPositions(c.Context)
		if err != nil {
			return
		}
		end, err := a.EndPosition(c.Context)
		if err != nil {
			return
		}
		printf(w, "frame %d: joints [%s] end effector (%.4f, %.4f)", frame, formatValues(joints), end.X, end.Y)
		trail = append(trail, end)
		frame++
	}

	if c.Bool(planFlagInstant) {
		for a.Step() {
			emit()
		}
		err = m.Wait(c.Context)
	} else {
		player := utils.NewStoppableWorkerWithTicker(nil, a.FramePeriod(), func(context.Context) {
			if a.Step() {
				emit()
			}
		})
		err = m.Wait(c.Context)
		player.Stop()
	}
	if err != nil {
		return err
	}

	if s.Trail {
		printf(w, "path length: %.4f", motionplan.PathLength(trail))
	}
	return nil
}

// WorkspaceAction prints the inner and outer radius the arm can reach.
func WorkspaceAction(c *cli.Context) error {
	s, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	ws := s.Links.Workspace()
	if c.Bool(generalFlagJSON) {
		return writeJSON(c.App.Writer, ws)
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Links", "Inner radius", "Outer radius"})
	t.AppendRow([]interface{}{formatValues(s.Links), fmt.Sprintf("%.4f", ws.Min), fmt.Sprintf("%.4f", ws.Max)})
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// SchemaAction prints the JSON schema of scenario files.
func SchemaAction(c *cli.Context) error {
	out, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
