package scanclient

import "testing"

func TestDetectionNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         Detection
		wantCode   string
		wantFormat string
	}{
		{
			name:       "framing characters stripped",
			in:         Detection{Code: "A12345678Z", Format: "code_128_reader"},
			wantCode:   "12345678",
			wantFormat: "code 128",
		},
		{
			name:       "inner whitespace trimmed after framing strip",
			in:         Detection{Code: "x 42 y", Format: "ean_reader"},
			wantCode:   "42",
			wantFormat: "ean",
		},
		{
			name:       "two characters collapse to empty",
			in:         Detection{Code: "AZ", Format: "code_39_reader"},
			wantCode:   "",
			wantFormat: "code 39",
		},
		{
			name:       "single character collapses to empty",
			in:         Detection{Code: "A", Format: "upc_reader"},
			wantCode:   "",
			wantFormat: "upc",
		},
		{
			name:       "empty detection stays empty",
			in:         Detection{},
			wantCode:   "",
			wantFormat: "",
		},
		{
			name:       "format without reader suffix kept",
			in:         Detection{Code: "xABCy", Format: "qr_code"},
			wantCode:   "ABC",
			wantFormat: "qr code",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", got.Format, tt.wantFormat)
			}
		})
	}
}
