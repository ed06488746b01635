package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotZip is returned when a container does not start with a ZIP signature.
var ErrNotZip = errors.New("not a zip archive")

// IsZip reports whether r starts with a ZIP record signature: a local file
// header (PK\x03\x04), the end of central directory of an empty archive
// (PK\x05\x06) or a spanning marker (PK\x07\x08). Inputs shorter than four
// bytes are not ZIPs.
func IsZip(r io.ReaderAt) (bool, error) {
	var sig [4]byte
	n, err := r.ReadAt(sig[:], 0)
	if n < len(sig) {
		if err == nil || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read signature: %w", err)
	}

	if sig[0] != 'P' || sig[1] != 'K' {
		return false, nil
	}
	switch [2]byte{sig[2], sig[3]} {
	case [2]byte{3, 4}, [2]byte{5, 6}, [2]byte{7, 8}:
		return true, nil
	}
	return false, nil
}

// IsZipFile reports whether the file at path starts with a ZIP signature.
func IsZipFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return IsZip(f)
}
