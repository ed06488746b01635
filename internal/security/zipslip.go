package security

// Entry names are inspected as raw bytes, never as decoded platform paths, so
// the checks below behave the same for non-UTF-8 names and on every OS.

// Name limits used by the long-path heuristic.
const (
	MaxNameBytes = 255
	MaxNameDepth = 40
)

func isSeparator(b byte) bool {
	return b == '/' || b == '\\'
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// IsAbsolute reports whether a raw entry name is absolute on any platform:
// - POSIX root ("/etc/passwd") or Windows root ("\Windows")
// - Windows drive prefix ("C:/", "c:\")
// - UNC share prefix ("\\server\share")
//
// A drive letter without a separator ("C:x") is drive-relative and not absolute.
func IsAbsolute(name []byte) bool {
	if len(name) == 0 {
		return false
	}

	if isSeparator(name[0]) {
		return true
	}

	if len(name) >= 3 && isASCIILetter(name[0]) && name[1] == ':' && isSeparator(name[2]) {
		return true
	}

	// Covered by the leading separator check, kept explicit for UNC names
	return len(name) >= 2 && name[0] == '\\' && name[1] == '\\'
}

// HasParentComponents reports whether the name contains "../" or "..\".
// A trailing ".." with no separator after it does not count.
func HasParentComponents(name []byte) bool {
	for i := 0; i+2 < len(name); i++ {
		if name[i] == '.' && name[i+1] == '.' && isSeparator(name[i+2]) {
			return true
		}
	}
	return false
}

// DepthHint counts the non-empty segments of a name split on runs of '/' or '\'.
// Leading, trailing and repeated separators never add a segment.
func DepthHint(name []byte) int {
	depth := 0
	start := 0
	for i, b := range name {
		if isSeparator(b) {
			if i > start {
				depth++
			}
			start = i + 1
		}
	}
	if len(name) > start {
		depth++
	}
	return depth
}

// PathIsExtremelyLong reports names longer than MaxNameBytes bytes or deeper
// than MaxNameDepth segments.
func PathIsExtremelyLong(name []byte) bool {
	return len(name) > MaxNameBytes || DepthHint(name) > MaxNameDepth
}

// ContainsControlChars reports whether any byte is a C0 control (0x00-0x1F) or DEL (0x7F).
func ContainsControlChars(name []byte) bool {
	for _, b := range name {
		if b < 0x20 || b == 0x7F {
			return true
		}
	}
	return false
}

// IsWithinRoot reports whether a symlink target, read as a relative path,
// stays inside the extraction root: it must be neither absolute nor contain
// parent components.
func IsWithinRoot(target string) bool {
	b := []byte(target)
	return !IsAbsolute(b) && !HasParentComponents(b)
}
