// Package rotate turns pointer drags into rotation with momentum: the
// object follows the pointer while held and coasts to a stop after release.
package rotate

import (
	"math"

	"github.com/pthm-cable/festive/input"
)

// Tuning is the feel of a rotator.
type Tuning struct {
	// Sensitivity converts pointer pixels to rotation units
	Sensitivity float64
	// Damping multiplies the velocity on every idle frame
	Damping float64
	// MinVelocity is the magnitude below which an axis snaps to rest
	MinVelocity float64
}

// Axes selects which drag directions drive rotation.
type Axes uint8

const (
	// Yaw is a single axis driven by horizontal drag.
	Yaw Axes = iota
	// PitchYaw adds pitch driven by vertical drag.
	PitchYaw
)

// Vec holds one value per rotation axis. Pitch turns about the horizontal
// screen axis, Yaw about the vertical one.
type Vec struct {
	Pitch, Yaw float64
}

// State is the idle/dragging machine for one rotatable object.
type State struct {
	Tuning
	axes Axes

	Rotation Vec
	Velocity Vec

	dragging bool
	anchor   input.Point
}

// NewState creates an idle state at rest.
func NewState(t Tuning, axes Axes) *State {
	return &State{Tuning: t, axes: axes}
}

// Dragging reports whether a drag is in progress.
func (s *State) Dragging() bool {
	return s.dragging
}

// Resting reports whether the object is idle with no velocity left.
func (s *State) Resting() bool {
	return !s.dragging && s.Velocity == Vec{}
}

// Press enters dragging at p and kills any momentum. It reports false if a
// drag was already in progress.
func (s *State) Press(p input.Point) bool {
	if s.dragging {
		return false
	}
	s.dragging = true
	s.anchor = p
	s.Velocity = Vec{}
	return true
}

// Move applies the incremental delta from the anchor: the velocity becomes
// delta times sensitivity, the rotation advances by that velocity and the
// anchor moves to p. Ignored unless dragging.
func (s *State) Move(p input.Point) {
	if !s.dragging {
		return
	}
	dx := p.X - s.anchor.X
	dy := p.Y - s.anchor.Y
	s.anchor = p

	s.Velocity.Yaw = dx * s.Sensitivity
	s.Rotation.Yaw += s.Velocity.Yaw
	if s.axes == PitchYaw {
		s.Velocity.Pitch = dy * s.Sensitivity
		s.Rotation.Pitch += s.Velocity.Pitch
	}
}

// Release returns to idle, keeping the last velocity as momentum. It reports
// false if no drag was in progress.
func (s *State) Release() bool {
	if !s.dragging {
		return false
	}
	s.dragging = false
	return true
}

// Tick runs one idle frame of momentum: each axis decays by Damping and snaps
// to exactly zero below MinVelocity, otherwise the rotation advances. Frames
// during a drag do nothing.
func (s *State) Tick() {
	if s.dragging {
		return
	}
	s.Rotation.Pitch += s.decay(&s.Velocity.Pitch)
	s.Rotation.Yaw += s.decay(&s.Velocity.Yaw)
}

func (s *State) decay(v *float64) float64 {
	if *v == 0 {
		return 0
	}
	*v *= s.Damping
	if math.Abs(*v) < s.MinVelocity {
		*v = 0
	}
	return *v
}
