// Package session holds the nested login stack. The stack is owned by the
// running engine, never persisted, and constructed fresh per process (and
// per test).
package session

import "github.com/pagecroft/bookstore/pkg/types"

// Frame is one login on the stack: the identity's privilege snapshot taken
// at login time plus the frame's currently selected book.
type Frame struct {
	UserID       string
	Privilege    int
	SelectedISBN string
}

// Stack is the ordered stack of logged-in identities. The zero value is an
// empty stack (not logged in, effective privilege 0).
type Stack struct {
	frames []Frame
}

// New returns an empty session stack.
func New() *Stack {
	return &Stack{}
}

// Depth returns the number of active frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// LoggedIn reports whether any frame is active.
func (s *Stack) LoggedIn() bool {
	return len(s.frames) > 0
}

// Push adds a frame for the given identity with an empty selection.
func (s *Stack) Push(userID string, privilege int) {
	s.frames = append(s.frames, Frame{UserID: userID, Privilege: privilege})
}

// Pop removes the top frame and its selection. Reports false on an empty
// stack.
func (s *Stack) Pop() bool {
	if len(s.frames) == 0 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

// Current returns a copy of the top frame, or the zero Frame when the stack
// is empty.
func (s *Stack) Current() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	return s.frames[len(s.frames)-1]
}

// Privilege returns the effective privilege: the top frame's snapshot, or
// guest (0) when not logged in.
func (s *Stack) Privilege() int {
	return s.Current().Privilege
}

// Actor returns the audit actor for the current state: the top frame's user
// id, or the guest marker when not logged in.
func (s *Stack) Actor() string {
	if len(s.frames) == 0 {
		return types.GuestActor
	}
	return s.frames[len(s.frames)-1].UserID
}

// SetSelected records the top frame's selected ISBN. Reports false when not
// logged in.
func (s *Stack) SetSelected(isbn string) bool {
	if len(s.frames) == 0 {
		return false
	}
	s.frames[len(s.frames)-1].SelectedISBN = isbn
	return true
}

// Selected returns the top frame's selected ISBN, empty when nothing is
// selected or the stack is empty.
func (s *Stack) Selected() string {
	return s.Current().SelectedISBN
}

// Holds reports whether any frame on the stack belongs to userID.
func (s *Stack) Holds(userID string) bool {
	for i := range s.frames {
		if s.frames[i].UserID == userID {
			return true
		}
	}
	return false
}
