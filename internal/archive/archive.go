// Package archive is the codec boundary of the audit: it opens an archive
// container and exposes per-entry metadata plus a way to read a decoded
// payload. Nothing in this package writes to disk.
package archive

import (
	"errors"
	"fmt"
	"io"
)

// ErrInvalidArchive marks an entry that could not be parsed because the
// container is truncated or internally inconsistent.
var ErrInvalidArchive = errors.New("invalid archive")

// IsInvalidArchive reports whether err was classified as ErrInvalidArchive.
func IsInvalidArchive(err error) bool {
	return errors.Is(err, ErrInvalidArchive)
}

// Header is the metadata the codec declares for one entry.
type Header struct {
	// RawName is the entry name exactly as stored.
	RawName []byte
	// Name is the traversal-safe relative slash path derived from RawName.
	Name string

	CompressedSize   uint64
	UncompressedSize uint64
	Encrypted        bool

	// Mode holds POSIX mode bits when HasMode is set.
	Mode    uint32
	HasMode bool
}

// Entry is one archive member: its header and access to its decoded payload.
type Entry struct {
	Header
	open func() (io.ReadCloser, error)
}

// NewEntry builds an Entry from a header and a payload opener.
// A nil opener yields an entry whose payload cannot be read.
func NewEntry(h Header, open func() (io.ReadCloser, error)) Entry {
	return Entry{Header: h, open: open}
}

// Open returns a reader for the decoded payload.
func (e Entry) Open() (io.ReadCloser, error) {
	if e.open == nil {
		return nil, fmt.Errorf("entry %q has no readable payload", e.Name)
	}
	return e.open()
}

// Reader is an opened archive whose entries are fetched by index.
type Reader interface {
	// Len returns the number of entries declared by the container.
	Len() int
	// Entry fetches the entry at index i. Truncated or inconsistent entries
	// return an error satisfying IsInvalidArchive.
	Entry(i int) (Entry, error)
}
