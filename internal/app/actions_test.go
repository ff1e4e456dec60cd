package app

import (
	"errors"
	"testing"
)

func TestMirrorRelaysFollowUp(t *testing.T) {
	after := taskSavedMsg{}
	if got := mirror(nil, after); got != after {
		t.Errorf("mirror(nil) = %#v, want the follow-up message", got)
	}
}

func TestMirrorFlagsFailedCacheWrite(t *testing.T) {
	werr := errors.New("disque plein")
	after := taskStatusChangedMsg{taskID: 3}

	got, ok := mirror(werr, after).(mirrorErrMsg)
	if !ok {
		t.Fatalf("mirror(err) = %#v, want mirrorErrMsg", mirror(werr, after))
	}
	if !errors.Is(got.err, werr) {
		t.Errorf("err = %v, want %v", got.err, werr)
	}
	if got.after != after {
		t.Errorf("after = %#v, want %#v", got.after, after)
	}
}
