package scene

import (
	"fmt"

	"github.com/matzehuels/onepercent/pkg/core/anim"
)

// Op is the kind of a Command.
type Op int

const (
	// OpCreate: the circle appears and grows in.
	OpCreate Op = iota
	// OpUpdate: the circle moves to a new target.
	OpUpdate
	// OpRemove: the circle disappears immediately.
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// MarshalText encodes the op by name.
func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText decodes an op name written by MarshalText.
func (o *Op) UnmarshalText(b []byte) error {
	switch string(b) {
	case "create":
		*o = OpCreate
	case "update":
		*o = OpUpdate
	case "remove":
		*o = OpRemove
	default:
		return fmt.Errorf("unknown op %q", b)
	}
	return nil
}

// Command is one rendering instruction for a surface. For OpRemove, To is the
// zero Circle and Timing is zero.
type Command struct {
	Op     Op          `json:"op"`
	Index  int         `json:"index"`
	From   Circle      `json:"from"`
	To     Circle      `json:"to"`
	Timing anim.Timing `json:"timing"`
}

// Commands flattens d into index order, scheduling every created and updated
// circle with s.
func Commands(d Diff, s anim.Scheduler) []Command {
	if d.Len() == 0 {
		return nil
	}
	cmds := make([]Command, 0, d.Len())
	for _, u := range d.Persisting {
		cmds = append(cmds, Command{Op: OpUpdate, Index: u.Index, From: u.From, To: u.Target, Timing: s.Schedule(u.Index)})
	}
	for _, e := range d.Entering {
		cmds = append(cmds, Command{Op: OpCreate, Index: e.Index, From: e.Initial, To: e.Target, Timing: s.Schedule(e.Index)})
	}
	for _, x := range d.Exiting {
		cmds = append(cmds, Command{Op: OpRemove, Index: x.Index, From: x.Circle})
	}
	return cmds
}

// Scene is the target state of the rendered circles, indexed by position.
// The zero value is an empty scene.
type Scene struct {
	circles []Circle
}

// Apply changes the scene according to cmd.
func (s *Scene) Apply(cmd Command) {
	if cmd.Index < 0 {
		return
	}
	switch cmd.Op {
	case OpCreate, OpUpdate:
		for len(s.circles) <= cmd.Index {
			s.circles = append(s.circles, Circle{})
		}
		s.circles[cmd.Index] = cmd.To
	case OpRemove:
		if cmd.Index < len(s.circles) {
			s.circles = s.circles[:cmd.Index]
		}
	}
}

// Circles returns a copy of the live circles.
func (s *Scene) Circles() []Circle {
	if len(s.circles) == 0 {
		return nil
	}
	out := make([]Circle, len(s.circles))
	copy(out, s.circles)
	return out
}

// Len returns the number of live circles.
func (s *Scene) Len() int { return len(s.circles) }

// Clear removes every circle.
func (s *Scene) Clear() { s.circles = nil }
