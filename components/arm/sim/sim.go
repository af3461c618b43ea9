// Package sim implements the arm API and simulates moving to joint positions over time by playing
// back a planned joint space trajectory one frame per tick. It offers an API to do so in a
// completely deterministic manner for testing.
package sim

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	goutils "go.viam.com/utils"

	"go.viam.com/armsim/components/arm"
	"go.viam.com/armsim/kinematics"
	"go.viam.com/armsim/motionplan"
	"go.viam.com/armsim/utils"
)

var (
	// ErrStopped is returned by a move that was stopped or replaced before reaching its target.
	ErrStopped = errors.New("stopped before reaching target")

	// ErrClosed is returned by calls on a closed arm.
	ErrClosed = errors.New("arm is closed")
)

// operation has the following logical states/invariants:
// 1. Default constructed -- no operation in flight
// 2. Operation started -> player != nil, done == false, stopped == false
// 3. Operation successful -> done == true
// 4. Operation failed -> stopped == true
//
// finished is closed exactly once, on the transition to done or stopped.
type operation struct {
	player   *motionplan.Player
	done     bool
	stopped  bool
	finished chan struct{}
}

func newOperation(traj motionplan.Trajectory) *operation {
	return &operation{player: motionplan.NewPlayer(traj), finished: make(chan struct{})}
}

func (op *operation) isMoving() bool {
	return op != nil && op.player != nil && !op.done && !op.stopped
}

func (op *operation) finish(stopped bool) {
	if !op.isMoving() {
		return
	}
	op.done = !stopped
	op.stopped = stopped
	close(op.finished)
}

// Config describes a simulated arm.
type Config struct {
	// Links are the link lengths, base first.
	Links kinematics.LinkChain `json:"links"`

	// Initial joint angles in degrees. Defaults to all zeros.
	Initial kinematics.Configuration `json:"initial,omitempty"`

	// Planner sets the duration, frame rate and easing of every move. Defaults to
	// motionplan.NewBasicPlannerOptions.
	Planner *motionplan.PlannerOptions `json:"planner,omitempty"`

	// IK controls MoveToPosition. Defaults to kinematics.NewBasicIKOptions.
	IK *kinematics.IKOptions `json:"ik,omitempty"`

	// SimulateTime controls whether the arm spins up a background goroutine that advances one
	// frame per 1/fps of Clock time. When off, the owner must call Step for the arm to "move".
	SimulateTime bool `json:"simulate-time,omitempty"`

	// Clock drives time simulation and pose streaming. Defaults to the wall clock.
	Clock clock.Clock `json:"-"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate() error {
	if len(conf.Links) == 0 {
		return goutils.NewConfigValidationFieldRequiredError("", "links")
	}
	if err := conf.Links.Validate(); err != nil {
		return err
	}
	if conf.Initial != nil {
		if err := conf.Links.CheckShape(conf.Initial); err != nil {
			return errors.Wrap(err, "initial joint positions")
		}
	}
	if conf.Planner != nil && !(conf.Planner.FPS > 0) && conf.SimulateTime {
		return errors.New("simulating time requires a positive fps")
	}
	return nil
}

// Arm is a simulated planar arm. Its joints only change when a frame is applied, either by Step
// or by the time simulation worker.
type Arm struct {
	// logical properties
	chain   kinematics.LinkChain
	planner motionplan.PlannerOptions
	ik      kinematics.IKOptions
	clk     clock.Clock

	// lifetime management
	closed atomic.Bool
	ctx    context.Context
	cancel func()

	// operational properties
	mu         sync.Mutex
	currInputs kinematics.Configuration
	operation  *operation

	timeSimulation utils.StoppableWorkers

	logger golog.Logger
}

// NewArm returns a simulated arm built from conf.
func NewArm(conf Config, logger golog.Logger) (*Arm, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	planner := motionplan.NewBasicPlannerOptions()
	if conf.Planner != nil {
		planner = conf.Planner
	}
	ik := kinematics.NewBasicIKOptions()
	if conf.IK != nil {
		ik = conf.IK
	}
	clk := conf.Clock
	if clk == nil {
		clk = clock.New()
	}
	initial := make(kinematics.Configuration, len(conf.Links))
	if conf.Initial != nil {
		initial = conf.Initial.Wrapped()
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Arm{
		chain:      append(kinematics.LinkChain(nil), conf.Links...),
		planner:    *planner,
		ik:         *ik,
		clk:        clk,
		ctx:        ctx,
		cancel:     cancel,
		currInputs: initial,
		logger:     logger,
	}

	if conf.SimulateTime {
		a.timeSimulation = utils.NewStoppableWorkerWithTicker(clk, a.FramePeriod(), func(context.Context) {
			a.Step()
		})
	}
	return a, nil
}

// FramePeriod returns the time between two frames at the configured fps.
func (a *Arm) FramePeriod() time.Duration {
	if !(a.planner.FPS > 0) {
		return 0
	}
	return time.Duration(float64(time.Second) / a.planner.FPS)
}

// Step applies the next frame of the motion in progress. It returns false if no motion is in
// progress. Applying the last frame completes the motion.
func (a *Arm) Step() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	op := a.operation
	if !op.isMoving() {
		return false
	}
	frame, ok := op.player.Next()
	if ok {
		a.currInputs = frame.Wrapped()
	}
	if op.player.Done() {
		op.finish(false)
		a.logger.Debugw("move complete", "joints", []float64(a.currInputs))
	}
	return ok
}

// Chain returns the link lengths of the arm.
func (a *Arm) Chain() kinematics.LinkChain {
	return a.chain
}

// JointPositions returns the current joint angles.
func (a *Arm) JointPositions(ctx context.Context) (kinematics.Configuration, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currInputs.Copy(), nil
}

// Pose returns the current position of every joint.
func (a *Arm) Pose(ctx context.Context) (kinematics.Pose, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return kinematics.ComputePose(a.chain, a.currInputs)
}

// EndPosition returns the current end effector position.
func (a *Arm) EndPosition(ctx context.Context) (r2.Point, error) {
	pose, err := a.Pose(ctx)
	if err != nil {
		return r2.Point{}, err
	}
	return pose.EndEffector(), nil
}

// Plan returns the trajectory a move from the current joints to target would play.
func (a *Arm) Plan(ctx context.Context, target kinematics.Configuration) (motionplan.Trajectory, error) {
	if err := arm.CheckDesiredJointPositions(ctx, a, target); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.planLocked(target)
}

// planLocked plans from the current joints. The caller must hold a.mu.
func (a *Arm) planLocked(target kinematics.Configuration) (motionplan.Trajectory, error) {
	return motionplan.PlanJointMotion(a.currInputs.Copy(), target, &a.planner)
}

// Move is a motion started by StartMove.
type Move struct {
	arm *Arm
	op  *operation
}

// Frames returns the number of frames the move plays.
func (m *Move) Frames() int {
	return m.op.player.Len()
}

// Wait blocks until the move completes, is stopped, or ctx is done. Cancelling ctx stops the
// move where it is.
func (m *Move) Wait(ctx context.Context) error {
	stopSlowLogging := utils.SlowLogger(ctx, m.arm.clk, "waiting for arm to reach its target",
		"frames", strconv.Itoa(m.Frames()), m.arm.logger)
	defer stopSlowLogging()

	select {
	case <-m.op.finished:
	case <-ctx.Done():
		m.arm.stopOperation(m.op)
		return ctx.Err()
	case <-m.arm.ctx.Done():
		// `Arm.Close` was called.
		m.arm.stopOperation(m.op)
		return ErrClosed
	}

	m.arm.mu.Lock()
	stopped := m.op.stopped
	m.arm.mu.Unlock()
	if stopped {
		return ErrStopped
	}
	return nil
}

// StartMove plans a trajectory to target and makes it the motion in progress, replacing any
// other. It does not wait for the motion.
func (a *Arm) StartMove(ctx context.Context, target kinematics.Configuration) (*Move, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}
	if err := arm.CheckDesiredJointPositions(ctx, a, target); err != nil {
		return nil, err
	}

	// the start frame and the new operation are set together so no Step lands in between
	a.mu.Lock()
	traj, err := a.planLocked(target)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	op := newOperation(traj)
	if a.operation.isMoving() {
		a.logger.Debug("replacing motion in progress")
		a.operation.finish(true)
	}
	a.operation = op
	a.mu.Unlock()
	a.logger.Debugw("moving", "target", []float64(target), "frames", len(traj))
	return &Move{arm: a, op: op}, nil
}

// MoveToJointPositions plays a trajectory to target and blocks until it completes, is stopped, or
// ctx is done.
func (a *Arm) MoveToJointPositions(ctx context.Context, target kinematics.Configuration) error {
	m, err := a.StartMove(ctx, target)
	if err != nil {
		return err
	}
	return m.Wait(ctx)
}

// MoveToPosition solves inverse kinematics for target with the configured options and moves to
// the solution.
func (a *Arm) MoveToPosition(ctx context.Context, target r2.Point) error {
	config, res, err := kinematics.SolveChain(a.chain, target, &a.ik)
	if err != nil {
		return err
	}
	if res.Clamped {
		a.logger.Infow("target clamped to workspace",
			"from", res.Requested.String(), "to", res.Solved.String())
	}
	return a.MoveToJointPositions(ctx, config)
}

// MoveThroughJointPositions moves through each configuration in order.
func (a *Arm) MoveThroughJointPositions(ctx context.Context, positions []kinematics.Configuration) error {
	return arm.MoveThrough(ctx, a, positions)
}

// IsMoving reports whether a motion is in progress.
func (a *Arm) IsMoving(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.operation.isMoving(), nil
}

// Stop halts the motion in progress at its current frame.
func (a *Arm) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	// Only stop if we are moving. Otherwise the information that distinguishes whether the arm
	// stopped moving because it reached the goal, or because it was stopped is lost.
	if a.operation.isMoving() {
		a.operation.finish(true)
	}
	return nil
}

func (a *Arm) stopOperation(op *operation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	op.finish(true)
}

// PoseStreamed is one sample of a pose stream.
type PoseStreamed struct {
	Joints    kinematics.Configuration
	Pose      kinematics.Pose
	Timestamp time.Time
}

// StreamPoses samples the arm fps times per second of its clock until ctx is done or the arm is
// closed. A non-positive fps uses the planner fps.
func (a *Arm) StreamPoses(ctx context.Context, fps float64) (<-chan PoseStreamed, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}
	if !(fps > 0) {
		fps = a.planner.FPS
	}
	if !(fps > 0) {
		return nil, errors.Errorf("cannot stream at %v fps", fps)
	}

	ch := make(chan PoseStreamed, 8)
	ticker := a.clk.Ticker(time.Duration(float64(time.Second) / fps))
	go func() {
		defer close(ch)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-a.ctx.Done():
				return
			case <-ticker.C:
			}
			joints, err := a.JointPositions(ctx)
			if err != nil {
				return
			}
			pose, err := kinematics.ComputePose(a.chain, joints)
			if err != nil {
				return
			}
			select {
			case ch <- PoseStreamed{Joints: joints, Pose: pose, Timestamp: a.clk.Now()}:
			case <-ctx.Done():
				return
			case <-a.ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Close stops time simulation and fails any motion in progress.
func (a *Arm) Close(ctx context.Context) error {
	a.closed.Store(true)
	a.cancel()
	if a.timeSimulation != nil {
		a.timeSimulation.Stop()
	}
	return nil
}
