package platform

import "testing"

func TestParseWindowID_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"0x3a00007", 0x3a00007},
		{"0X3A00007", 0x3a00007},
		{"3a00007", 0x3a00007},
		{"0x3a00007 (Terminal)", 0x3a00007},
		{"  0x1e  ", 0x1e},
	}
	for _, tt := range tests {
		got, err := ParseWindowID(tt.input)
		if err != nil {
			t.Errorf("ParseWindowID(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWindowID(%q) = %#x, want %#x", tt.input, got, tt.want)
		}
	}
}

func TestParseWindowID_Invalid(t *testing.T) {
	tests := []string{
		"",
		"0x",
		"window",
		"(Terminal)",
		"0x1ffffffff",
	}
	for _, s := range tests {
		if _, err := ParseWindowID(s); err == nil {
			t.Errorf("ParseWindowID(%q) should fail", s)
		}
	}
}

func TestFormatWindowID_RoundTrip(t *testing.T) {
	id, err := ParseWindowID(FormatWindowID(0x4200011))
	if err != nil {
		t.Fatal(err)
	}
	if id != 0x4200011 {
		t.Errorf("got %#x, want 0x4200011", id)
	}
}

func TestParseWindowType(t *testing.T) {
	tests := []struct {
		input string
		want  WindowType
	}{
		{"_NET_WM_WINDOW_TYPE_NORMAL", WindowNormal},
		{"_NET_WM_WINDOW_TYPE_DESKTOP", WindowDesktop},
		{"desktop", WindowDesktop},
		{"Dock", WindowDock},
		{"_NET_WM_WINDOW_TYPE_DIALOG", WindowDialog},
		{"_NET_WM_WINDOW_TYPE_POPUP_MENU", WindowMenu},
		{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE", WindowOther},
	}
	for _, tt := range tests {
		if got := ParseWindowType(tt.input); got != tt.want {
			t.Errorf("ParseWindowType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWindowType_String(t *testing.T) {
	if WindowDesktop.String() != "desktop" {
		t.Errorf("got %q", WindowDesktop.String())
	}
	if WindowType(99).String() != "other" {
		t.Errorf("unknown type should render as other, got %q", WindowType(99).String())
	}
}
