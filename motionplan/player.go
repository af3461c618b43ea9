package motionplan

import "go.viam.com/armsim/kinematics"

// Player hands out the frames of a trajectory in order. It holds only a frame index, so the
// caller's scheduler (a render loop, a ticker, a test) decides when the next frame is due.
//
// A Player is not safe for concurrent use.
type Player struct {
	traj Trajectory
	next int
}

// NewPlayer returns a player positioned before the first frame.
func NewPlayer(traj Trajectory) *Player {
	return &Player{traj: traj}
}

// Next returns the next frame and advances, or returns false once every frame was handed out.
func (p *Player) Next() (kinematics.Configuration, bool) {
	if p.next >= len(p.traj) {
		return nil, false
	}
	frame := p.traj[p.next]
	p.next++
	return frame, true
}

// Index returns the index of the frame the next call to Next returns.
func (p *Player) Index() int {
	return p.next
}

// Len returns the number of frames in the trajectory.
func (p *Player) Len() int {
	return len(p.traj)
}

// Remaining returns the number of frames not yet handed out.
func (p *Player) Remaining() int {
	return len(p.traj) - p.next
}

// Done reports whether every frame was handed out.
func (p *Player) Done() bool {
	return p.next >= len(p.traj)
}

// Reset rewinds to the first frame.
func (p *Player) Reset() {
	p.next = 0
}

// Trajectory returns the trajectory being played.
func (p *Player) Trajectory() Trajectory {
	return p.traj
}
