package constants

import "testing"

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []TaskStatus{StatusCompleted, StatusDelivered} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []TaskStatus{StatusPending, StatusInProgress} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if len(TerminalStatuses()) != 2 {
		t.Errorf("unexpected terminal status set %v", TerminalStatuses())
	}
}

func TestMaterialOptionValid(t *testing.T) {
	if !MaterialProvide.Valid() || !MaterialBuy.Valid() {
		t.Error("provide and buy are the valid options")
	}
	if MaterialOption("rent").Valid() {
		t.Error("unknown option accepted")
	}
}
