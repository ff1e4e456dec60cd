package model

import (
	"testing"
	"time"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{StatusEnAttente, StatusEnCours},
		{StatusEnCours, StatusTermine},
		{StatusTermine, StatusAnnule},
		{StatusAnnule, StatusEnAttente},
		// Statuses outside the cycle restart at the beginning.
		{StatusEnRetard, StatusEnAttente},
		{"", StatusEnAttente},
	}

	for _, tt := range tests {
		if got := NextStatus(tt.current); got != tt.want {
			t.Errorf("NextStatus(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestIsClosed(t *testing.T) {
	for _, statut := range []string{StatusTermine, StatusAnnule} {
		if !(Task{Statut: statut}).IsClosed() {
			t.Errorf("task with status %q should be closed", statut)
		}
	}
	for _, statut := range []string{StatusEnAttente, StatusEnCours, StatusEnRetard} {
		if (Task{Statut: statut}).IsClosed() {
			t.Errorf("task with status %q should not be closed", statut)
		}
	}
}

func TestDueOnIgnoresTimeOfDay(t *testing.T) {
	task := Task{DateFin: time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)}

	if !task.DueOn(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected deadline to match its own calendar day")
	}
	if task.DueOn(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Error("deadline should not match the next day")
	}
}
