package help

import (
	"strings"
	"testing"

	"github.com/promanager/promanager/internal/keys"
)

func TestViewShowsContextSection(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.SetContext(ContextCalendar)

	out := m.View()
	if !strings.Contains(out, "Calendrier") {
		t.Error("calendar section title missing from help overlay")
	}
	if !strings.Contains(out, "jour précédent") {
		t.Error("calendar bindings missing from help overlay")
	}
}

func TestViewGeneralHasNoContextSection(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.SetContext(ContextGeneral)

	out := m.View()
	if !strings.Contains(out, "Général") {
		t.Error("global section missing from help overlay")
	}
	if strings.Contains(out, "Calendrier") {
		t.Error("general help should not carry a screen section")
	}
}
