package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/circuitz/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	s2 := &stubScreen{title: "practice"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "practice" {
		t.Errorf("expected active 'practice', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "practice"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "practice"})

	s3 := &stubScreen{title: "calculator"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "calculator" {
		t.Errorf("expected active 'calculator', got %q", r.Active().Title())
	}
	if !s3.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestNavigationMessages(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "practice"}})
	if r.View(80, 24) != "practice" {
		t.Fatalf("View = %q", r.View(80, 24))
	}
	r.Update(PopScreenMsg{})
	if r.View(80, 24) != "home" {
		t.Fatalf("View = %q", r.View(80, 24))
	}
	if home.updates != 0 {
		t.Errorf("navigation messages must not reach screens, got %d updates", home.updates)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "practice"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if top.updates != 1 || home.updates != 0 {
		t.Errorf("updates: top=%d home=%d", top.updates, home.updates)
	}
}

type backgroundScreen struct {
	stubScreen
	background []tea.Msg
	left       bool
}

func (b *backgroundScreen) UpdateBackground(msg tea.Msg) tea.Cmd {
	b.background = append(b.background, msg)
	return nil
}

func (b *backgroundScreen) Leave() { b.left = true }

type resultMsg struct{}

func TestUpdateReachesCoveredScreens(t *testing.T) {
	under := &backgroundScreen{stubScreen: stubScreen{title: "practice"}}
	top := &stubScreen{title: "calculator"}
	r := New(under)
	r.Push(top)

	r.Update(resultMsg{})
	if top.updates != 1 {
		t.Errorf("active screen updates = %d, want 1", top.updates)
	}
	if len(under.background) != 1 {
		t.Fatalf("covered screen saw %d messages, want 1", len(under.background))
	}
	if under.updates != 0 {
		t.Errorf("covered screen must not get Update, got %d", under.updates)
	}
}

func TestPopAndReplaceCallLeave(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	popped := &backgroundScreen{stubScreen: stubScreen{title: "practice"}}
	r.Push(popped)
	r.Update(PopScreenMsg{})
	if !popped.left {
		t.Error("Pop should call Leave")
	}

	replaced := &backgroundScreen{stubScreen: stubScreen{title: "practice"}}
	r.Push(replaced)
	r.Update(ReplaceScreenMsg{Screen: &stubScreen{title: "calculator"}})
	if !replaced.left {
		t.Error("Replace should call Leave on the old screen")
	}
}
