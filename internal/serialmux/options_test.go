package serialmux

import (
	"testing"

	"go.bug.st/serial"
)

func TestPortOptions_Normalize_Defaults(t *testing.T) {
	// Zero-value options should get the camera link defaults applied
	opts := PortOptions{}
	got, err := opts.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", got.BaudRate)
	}
	if got.DataBits != 8 {
		t.Errorf("DataBits = %d, want 8", got.DataBits)
	}
	if got.StopBits != 1 {
		t.Errorf("StopBits = %d, want 1", got.StopBits)
	}
	if got.Parity != "N" {
		t.Errorf("Parity = %q, want %q", got.Parity, "N")
	}
}

func TestPortOptions_Normalize_ExplicitValues(t *testing.T) {
	opts := PortOptions{BaudRate: 9600, DataBits: 7, StopBits: 2, Parity: "E"}
	got, err := opts.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", got.BaudRate)
	}
	if got.DataBits != 7 {
		t.Errorf("DataBits = %d, want 7", got.DataBits)
	}
	if got.StopBits != 2 {
		t.Errorf("StopBits = %d, want 2", got.StopBits)
	}
	if got.Parity != "E" {
		t.Errorf("Parity = %q, want %q", got.Parity, "E")
	}
}

func TestPortOptions_Normalize_NegativeBaudRate(t *testing.T) {
	opts := PortOptions{BaudRate: -5}
	got, err := opts.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.BaudRate != 115200 {
		t.Errorf("negative baud rate should default to 115200, got %d", got.BaudRate)
	}
}

func TestPortOptions_Normalize_ParityAliases(t *testing.T) {
	for alias, want := range map[string]string{
		"NONE": "N", "none": "N", "n": "N",
		"EVEN": "E", "even": "E", "e": "E",
		"ODD": "O", "odd": "O", "o": "O",
		" N ": "N",
	} {
		got, err := (PortOptions{Parity: alias}).Normalize()
		if err != nil {
			t.Errorf("Normalize() with parity %q: unexpected error %v", alias, err)
			continue
		}
		if got.Parity != want {
			t.Errorf("Normalize() with parity %q = %q, want %q", alias, got.Parity, want)
		}
	}
}

func TestPortOptions_Normalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts PortOptions
	}{
		{"data bits too small", PortOptions{DataBits: 4}},
		{"data bits too large", PortOptions{DataBits: 9}},
		{"bad stop bits", PortOptions{StopBits: 3}},
		{"bad parity", PortOptions{Parity: "M"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.opts.Normalize(); err == nil {
				t.Errorf("Normalize() = nil error for %+v", tt.opts)
			}
		})
	}
}

func TestPortOptions_Equal(t *testing.T) {
	a := PortOptions{BaudRate: 115200, Parity: "NONE"}
	b := PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "n"}
	if !a.Equal(b) {
		t.Error("options normalising to the same configuration should be Equal")
	}

	c := PortOptions{BaudRate: 9600}
	if a.Equal(c) {
		t.Error("options with different baud rates should not be Equal")
	}

	bad := PortOptions{Parity: "Z"}
	if a.Equal(bad) {
		t.Error("invalid options should never compare Equal")
	}
}

func TestPortOptions_SerialMode(t *testing.T) {
	mode, err := (PortOptions{}).SerialMode()
	if err != nil {
		t.Fatalf("SerialMode() error = %v", err)
	}
	if mode.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", mode.BaudRate)
	}
	if mode.DataBits != 8 {
		t.Errorf("DataBits = %d, want 8", mode.DataBits)
	}
	if mode.StopBits != serial.OneStopBit {
		t.Errorf("StopBits = %v, want serial.OneStopBit", mode.StopBits)
	}
	if mode.Parity != serial.NoParity {
		t.Errorf("Parity = %v, want serial.NoParity", mode.Parity)
	}
}

func TestPortOptions_SerialMode_TwoStopBitsEven(t *testing.T) {
	mode, err := (PortOptions{StopBits: 2, Parity: "E"}).SerialMode()
	if err != nil {
		t.Fatalf("SerialMode() error = %v", err)
	}
	if mode.StopBits != serial.TwoStopBits {
		t.Errorf("StopBits = %v, want serial.TwoStopBits", mode.StopBits)
	}
	if mode.Parity != serial.EvenParity {
		t.Errorf("Parity = %v, want serial.EvenParity", mode.Parity)
	}
}

func TestPortOptions_SerialMode_Invalid(t *testing.T) {
	if _, err := (PortOptions{DataBits: 3}).SerialMode(); err == nil {
		t.Error("SerialMode() should reject invalid options")
	}
}

func TestPortOptions_String(t *testing.T) {
	if got := (PortOptions{}).String(); got != "115200-8N1" {
		t.Errorf("String() = %q, want %q", got, "115200-8N1")
	}
	if got := (PortOptions{BaudRate: 9600, StopBits: 2, Parity: "odd"}).String(); got != "9600-8O2" {
		t.Errorf("String() = %q, want %q", got, "9600-8O2")
	}
}
