package mol

import "fmt"

// Trajectory is an ordered sequence of frames over one topology. Frames
// must agree on atom count and element symbols; geometry may differ.
type Trajectory struct {
	frames []*Molecule
}

// NewTrajectory builds a trajectory, validating every frame against the
// first.
func NewTrajectory(frames []*Molecule) (*Trajectory, error) {
	t := &Trajectory{}
	for i, f := range frames {
		if err := t.Append(f); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return t, nil
}

// Len returns the frame count.
func (t *Trajectory) Len() int {
	return len(t.frames)
}

// Frame returns frame i, or nil when out of range.
func (t *Trajectory) Frame(i int) *Molecule {
	if i < 0 || i >= len(t.frames) {
		return nil
	}
	return t.frames[i]
}

// Frames returns the underlying frame slice.
func (t *Trajectory) Frames() []*Molecule {
	return t.frames
}

// Append adds a frame, enforcing a consistent topology.
func (t *Trajectory) Append(frame *Molecule) error {
	if frame == nil {
		return fmt.Errorf("append frame: nil molecule")
	}
	if len(t.frames) > 0 {
		first := t.frames[0]
		if frame.NumAtoms() != first.NumAtoms() {
			return fmt.Errorf("append frame: got %d atoms, trajectory has %d", frame.NumAtoms(), first.NumAtoms())
		}
		for i := range frame.Atoms {
			if frame.Atoms[i].Symbol != first.Atoms[i].Symbol {
				return fmt.Errorf("append frame: atom %d is %s, trajectory has %s",
					i, frame.Atoms[i].Symbol, first.Atoms[i].Symbol)
			}
		}
	}
	t.frames = append(t.frames, frame)
	return nil
}
