package motionplan

// default values for planning options.
const (
	// default motion duration, in seconds.
	defaultDuration = 3.0

	// default sample rate, in frames per second.
	defaultFPS = 30.0
)

// PlannerOptions holds the timing and easing of a joint space motion.
type PlannerOptions struct {
	// Duration of the motion in seconds.
	Duration float64 `json:"duration"`

	// FPS is the number of frames sampled per second of motion.
	FPS float64 `json:"fps"`

	Easing Easing `json:"easing"`
}

// NewBasicPlannerOptions returns a 3 second, 30 fps, linear motion.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		Duration: defaultDuration,
		FPS:      defaultFPS,
		Easing:   Linear,
	}
}

// FrameCount returns the number of steps N of the motion; a trajectory has N+1 frames.
func (opts *PlannerOptions) FrameCount() int {
	return FrameCount(opts.Duration, opts.FPS)
}
