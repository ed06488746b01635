package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/Fuabioo/zipaudit/internal/security"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Host systems (upper byte of the "version made by" field) whose external
// attributes carry POSIX mode bits.
const (
	creatorUnix   = 3
	creatorMacOSX = 19
)

// flagEncrypted is general purpose bit 0 (traditional PKWARE or AES encryption).
const flagEncrypted = 0x1

// Zip reads entries from a ZIP container. Only the central directory is
// parsed up front; local headers are validated lazily per entry.
type Zip struct {
	zr     *zip.Reader
	closer io.Closer
}

// OpenZip parses the central directory of the archive held by r.
func OpenZip(r io.ReaderAt, size int64) (*Zip, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil && zr == nil {
		return nil, fmt.Errorf("failed to read zip central directory: %w", err)
	}

	return newZip(zr, nil), nil
}

// OpenZipFile opens the archive at path. The caller must Close it.
func OpenZipFile(path string) (*Zip, error) {
	rc, err := zip.OpenReader(path)
	if err != nil && rc == nil {
		return nil, fmt.Errorf("failed to open zip file: %w", err)
	}

	return newZip(&rc.Reader, rc), nil
}

func newZip(zr *zip.Reader, closer io.Closer) *Zip {
	// zstd payloads (method 93) are common in modern archivers
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return &Zip{zr: zr, closer: closer}
}

// Close releases the underlying file, if any.
func (z *Zip) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

// Len returns the number of central directory records.
func (z *Zip) Len() int {
	return len(z.zr.File)
}

// Entry returns the entry at index i after checking that its local header is
// present where the central directory says it is.
func (z *Zip) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(z.zr.File) {
		return Entry{}, fmt.Errorf("entry index %d out of range [0,%d)", i, len(z.zr.File))
	}

	f := z.zr.File[i]
	if _, err := f.DataOffset(); err != nil {
		return Entry{}, classify(f.Name, err)
	}

	h := Header{
		RawName:          []byte(f.Name),
		Name:             security.SanitizeName(f.Name),
		CompressedSize:   f.CompressedSize64,
		UncompressedSize: f.UncompressedSize64,
		Encrypted:        f.Flags&flagEncrypted != 0,
	}

	switch f.CreatorVersion >> 8 {
	case creatorUnix, creatorMacOSX:
		h.Mode = f.ExternalAttrs >> 16
		h.HasMode = true
	}

	return NewEntry(h, f.Open), nil
}

// classify tags local-header failures caused by truncation or a bad
// signature as ErrInvalidArchive.
func classify(name string, err error) error {
	if errors.Is(err, zip.ErrFormat) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: local header of %q: %w", ErrInvalidArchive, name, err)
	}
	return fmt.Errorf("local header of %q: %w", name, err)
}
