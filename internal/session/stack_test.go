package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagecroft/bookstore/pkg/types"
)

func TestEmptyStack(t *testing.T) {
	s := New()

	assert.Equal(t, 0, s.Depth())
	assert.False(t, s.LoggedIn())
	assert.Equal(t, types.PrivilegeGuest, s.Privilege())
	assert.Equal(t, types.GuestActor, s.Actor())
	assert.Equal(t, "", s.Selected())
	assert.False(t, s.Pop())
	assert.False(t, s.SetSelected("isbn"))
}

func TestPushPop(t *testing.T) {
	s := New()
	s.Push("root", types.PrivilegeOwner)
	s.Push("clerk", types.PrivilegeStaff)

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, "clerk", s.Actor())
	assert.Equal(t, types.PrivilegeStaff, s.Privilege())

	assert.True(t, s.Pop())
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, "root", s.Actor())
	assert.Equal(t, types.PrivilegeOwner, s.Privilege())
}

// Popping a frame restores the previous frame's selection context.
func TestSelectionScopedPerFrame(t *testing.T) {
	s := New()
	s.Push("root", types.PrivilegeOwner)
	assert.True(t, s.SetSelected("book-a"))

	s.Push("clerk", types.PrivilegeStaff)
	assert.Equal(t, "", s.Selected(), "new frame starts with no selection")
	assert.True(t, s.SetSelected("book-b"))
	assert.Equal(t, "book-b", s.Selected())

	assert.True(t, s.Pop())
	assert.Equal(t, "book-a", s.Selected())
}

func TestHolds(t *testing.T) {
	s := New()
	s.Push("root", types.PrivilegeOwner)
	s.Push("clerk", types.PrivilegeStaff)

	assert.True(t, s.Holds("root"))
	assert.True(t, s.Holds("clerk"))
	assert.False(t, s.Holds("other"))
}

// The frame privilege is a snapshot taken at push time; it never re-reads
// account state.
func TestPrivilegeSnapshot(t *testing.T) {
	s := New()
	s.Push("u1", types.PrivilegeCustomer)
	cur := s.Current()
	assert.Equal(t, "u1", cur.UserID)
	assert.Equal(t, types.PrivilegeCustomer, cur.Privilege)

	// Mutating the returned copy must not affect the stack.
	cur.Privilege = types.PrivilegeOwner
	assert.Equal(t, types.PrivilegeCustomer, s.Privilege())
}
