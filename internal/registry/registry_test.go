package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/physics"
)

type fakePreset struct{ id, title string }

func (p fakePreset) ID() string    { return p.id }
func (p fakePreset) Title() string { return p.title }
func (p fakePreset) Populate(physics.Scene, config.SceneConfig) ([]physics.Actor, error) {
	return nil, nil
}
func (p fakePreset) Update(physics.Scene, []physics.Actor, float64) {}

func TestRegisterCreateList(t *testing.T) {
	Register("zz-test-b", func() Preset { return fakePreset{"zz-test-b", "B"} })
	Register("zz-test-a", func() Preset { return fakePreset{"zz-test-a", "A"} })

	if !Exists("zz-test-a") || !Exists("zz-test-b") {
		t.Fatal("registered presets should exist")
	}
	if Exists("zz-missing") {
		t.Error("unregistered preset should not exist")
	}

	p, err := Create("zz-test-a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Title() != "A" {
		t.Errorf("Title() = %q, want A", p.Title())
	}

	if _, err := Create("zz-missing"); err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("Create(missing) err = %v", err)
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "zz-test-") {
			ids = append(ids, info.ID+"="+info.Title)
		}
	}
	if strings.Join(ids, ",") != "zz-test-a=A,zz-test-b=B" {
		t.Errorf("List() = %v, want sorted a then b", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Preset { return fakePreset{"zz-dup", "Dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz-dup", func() Preset { return fakePreset{"zz-dup", "Dup"} })
}
