package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                                          { return g.id }
func (g *stubGame) Title() string                                       { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) error                      { return nil }
func (g *stubGame) Step(core.InputFrame, time.Duration) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                                 {}
func (g *stubGame) State() core.GameState                               { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "Stub zz-stub" {
				t.Errorf("Title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}
