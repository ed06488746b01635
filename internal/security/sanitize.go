package security

import (
	"strings"
	"unicode/utf8"
)

// LossyName decodes a raw entry name for display, replacing each maximal
// invalid UTF-8 subpart with one U+FFFD: "a\xff\xfeb" becomes "a\uFFFD\uFFFDb",
// while a truncated sequence such as "\xe2\x82" yields a single U+FFFD.
func LossyName(raw []byte) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			raw = raw[invalidPrefixLen(raw):]
			continue
		}
		sb.Write(raw[:size])
		raw = raw[size:]
	}

	return sb.String()
}

// invalidPrefixLen returns the length of the incomplete sequence starting
// b: the lead byte plus every continuation byte that could still have
// formed a valid encoding.
func invalidPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(b); n++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

// SanitizeName maps a raw entry name to a traversal-safe relative slash path.
// Mirrors the enclosed-name contract of archive codecs:
// - Truncates at the first NUL byte
// - Treats '\' as a separator
// - Drops empty, "." and ".." segments (and with them any leading root)
// - Drops a leading drive-letter segment ("C:")
//
// The result may be empty when nothing safe remains (e.g. "../..").
func SanitizeName(raw string) string {
	if i := strings.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	raw = strings.ReplaceAll(raw, "\\", "/")

	parts := strings.Split(raw, "/")
	kept := make([]string, 0, len(parts))
	for i, part := range parts {
		switch part {
		case "", ".", "..":
			continue
		}
		if i == 0 && len(part) == 2 && part[1] == ':' && isASCIILetter(part[0]) {
			continue
		}
		kept = append(kept, part)
	}

	return strings.Join(kept, "/")
}

// Windows device names. Superscript spellings (COM¹, LPT³, ...) are matched
// after normalizing the digits.
var reservedDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

var superscriptDigits = strings.NewReplacer("¹", "1", "²", "2", "³", "3")

// IsWindowsReservedName reports whether the final segment of a sanitized path
// names a Windows device, ignoring case, trailing dots and any extension.
// "NUL.txt", "lpt9.tar.gz" and "CON..." are reserved; "CONSOLE" and "LPT10" are not.
func IsWindowsReservedName(sanitized string) bool {
	name := strings.TrimRight(sanitized, "/\\")
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || !utf8.ValidString(name) {
		return false
	}

	name = strings.TrimRight(name, ".")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	name = asciiUpper(superscriptDigits.Replace(name))
	_, ok := reservedDeviceNames[name]
	return ok
}

// asciiUpper upper-cases ASCII letters only, leaving other runes untouched.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
