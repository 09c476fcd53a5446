package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("frame should have Left after Set")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not have Right")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		encoded string
	}{
		{"empty", nil, ""},
		{"single", []Action{ActionPause}, "Pause"},
		{"stable order", []Action{ActionRestart, ActionLeft}, "Left,Restart"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			if got := f.Encode(); got != tc.encoded {
				t.Errorf("Encode() = %q, expected %q", got, tc.encoded)
			}

			back := DecodeInputFrame(tc.encoded)
			for _, a := range tc.actions {
				if !back.Has(a) {
					t.Errorf("decoded frame missing %v", a)
				}
			}
		})
	}
}

func TestDecodeIgnoresUnknownActions(t *testing.T) {
	f := DecodeInputFrame("Left,Jump")
	if !f.Has(ActionLeft) {
		t.Error("expected Left")
	}
	if len(f.Actions) != 1 {
		t.Errorf("expected 1 action, got %d", len(f.Actions))
	}
}
