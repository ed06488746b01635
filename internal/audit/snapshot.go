package audit

import (
	"io"
	"unicode/utf8"

	"github.com/Fuabioo/zipaudit/internal/archive"
	"github.com/Fuabioo/zipaudit/internal/security"
)

// POSIX file type bits.
const (
	modeTypeMask = 0o170000
	modeSymlink  = 0o120000
)

// Snapshot is the precomputed, read-only view of one entry shared by every
// handler during that entry's visit. Handlers must not modify or retain it.
type Snapshot struct {
	CompressedSize   uint64
	UncompressedSize uint64
	// Ratio is UncompressedSize/CompressedSize, +Inf when CompressedSize is 0.
	Ratio float64

	// Name is the sanitized name; RawName the bytes as stored.
	Name        string
	RawName     []byte
	InvalidUTF8 bool

	HasAbsolutePath     bool
	HasParentComponents bool
	DepthHint           int

	Encrypted bool

	Mode    uint32
	HasMode bool

	IsSymlink bool
	// SymlinkTarget is set only for small symlinks whose payload could be read.
	SymlinkTarget    string
	HasSymlinkTarget bool
}

// NewSnapshot computes the snapshot for one entry. Reading a symlink target
// is best-effort: failures leave HasSymlinkTarget unset.
func NewSnapshot(e archive.Entry) *Snapshot {
	raw := e.RawName

	s := &Snapshot{
		CompressedSize:      e.CompressedSize,
		UncompressedSize:    e.UncompressedSize,
		Ratio:               security.CompressionRatio(e.CompressedSize, e.UncompressedSize),
		Name:                e.Name,
		RawName:             raw,
		InvalidUTF8:         !utf8.Valid(raw),
		HasAbsolutePath:     security.IsAbsolute(raw),
		HasParentComponents: security.HasParentComponents(raw),
		DepthHint:           security.DepthHint(raw),
		Encrypted:           e.Encrypted,
		Mode:                e.Mode,
		HasMode:             e.HasMode,
		IsSymlink:           e.HasMode && e.Mode&modeTypeMask == modeSymlink,
	}

	if s.IsSymlink && s.UncompressedSize <= security.SymlinkTargetReadLimit {
		s.SymlinkTarget, s.HasSymlinkTarget = readSymlinkTarget(e)
	}

	return s
}

func readSymlinkTarget(e archive.Entry) (string, bool) {
	rc, err := e.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, security.SymlinkTargetReadLimit))
	if err != nil || len(data) == 0 || !utf8.Valid(data) {
		return "", false
	}

	return string(data), true
}
