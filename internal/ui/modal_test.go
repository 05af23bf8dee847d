package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModalSetLocksBodyWhileOpen(t *testing.T) {
	s := NewModalSet()
	assert.Equal(t, "none", s.Display("create"))
	assert.Equal(t, "auto", s.BodyOverflow())

	s.Open("create")
	s.Open("edit")
	assert.Equal(t, "flex", s.Display("create"))
	assert.Equal(t, "hidden", s.BodyOverflow())

	s.Close("create")
	assert.Equal(t, "hidden", s.BodyOverflow())

	s.BackdropClick("edit")
	assert.Equal(t, "none", s.Display("edit"))
	assert.Equal(t, "auto", s.BodyOverflow())
}

func TestNewModalSetIgnoresEmptyID(t *testing.T) {
	s := NewModalSet("")
	assert.Equal(t, "auto", s.BodyOverflow())
	assert.True(t, NewModalSet("event").IsOpen("event"))
}

func TestTabsActivateSyncsClasses(t *testing.T) {
	tabs := NewTabs("grid", "list")
	assert.Equal(t, "grid", tabs.Active())
	assert.Equal(t, "active", tabs.TabClass("grid"))

	assert.True(t, tabs.Activate("list"))
	for _, id := range tabs.IDs() {
		assert.Equal(t, tabs.TabClass(id), tabs.ContentClass(id))
	}
	assert.Equal(t, "active", tabs.ContentClass("list"))
	assert.Empty(t, tabs.TabClass("grid"))

	assert.False(t, tabs.Activate("unknown"))
	assert.Equal(t, "list", tabs.Active())
}
