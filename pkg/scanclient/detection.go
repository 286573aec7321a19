package scanclient

import "strings"

// Detection is one decoded barcode frame as delivered by the scanning
// library's callback.
type Detection struct {
	Code   string
	Format string
}

// Normalize prepares a raw detection for submission. The decoding library
// frames the payload with one check character on each side, so the first and
// last characters of the code are stripped. The format label drops its
// "_reader" suffix and reads with spaces instead of underscores.
func (d Detection) Normalize() Detection {
	code := d.Code
	if len(code) >= 2 {
		code = code[1 : len(code)-1]
	} else {
		code = ""
	}

	format := strings.TrimSuffix(d.Format, "_reader")
	format = strings.ReplaceAll(format, "_", " ")

	return Detection{Code: strings.TrimSpace(code), Format: format}
}
