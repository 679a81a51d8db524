package keyboard

import "testing"

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data       string
		wantAction string
		wantValue  string
		wantErr    bool
	}{
		{"action:start", "action", "start", false},
		{"opt:Vegetarian", "opt", "Vegetarian", false},
		{"dl:pdf", "dl", "pdf", false},
		{"opt:With: colon", "opt", "With: colon", false},
		{"noseparator", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCallback(tt.data)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCallback(%q): expected error", tt.data)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCallback(%q): %v", tt.data, err)
			continue
		}
		if got.Action != tt.wantAction || got.Value != tt.wantValue {
			t.Errorf("ParseCallback(%q) = %q/%q, want %q/%q",
				tt.data, got.Action, got.Value, tt.wantAction, tt.wantValue)
		}
	}
}

func TestEncodeCallbackRoundTrip(t *testing.T) {
	encoded := EncodeCallback("dl", "markdown")
	got, err := ParseCallback(encoded)
	if err != nil {
		t.Fatalf("ParseCallback: %v", err)
	}
	if got.Action != "dl" || got.Value != "markdown" {
		t.Errorf("round trip = %q/%q", got.Action, got.Value)
	}
}
