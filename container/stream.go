package container

import (
	"io"
	"sort"

	"github.com/weifurryovo/furry/crypto"
	"github.com/weifurryovo/furry/ferrors"
	"github.com/weifurryovo/furry/format"
	"github.com/weifurryovo/furry/log"
)

// VirtualAudioStream presents the concatenated plaintext of every Audio
// chunk as a single seekable io.Reader/io.Seeker, the shape a downstream
// audio decoder expects. It holds at most one decrypted chunk in memory at
// a time; seeking outside that chunk evicts it and decrypts the chunk
// that now covers the cursor on the next Read.
type VirtualAudioStream struct {
	rd      *Reader
	entries []format.IndexEntry // sorted by VirtualOffset, tiling [0, len)
	length  uint64
	cursor  uint64

	cached      []byte
	cachedIndex int // index into entries of the chunk currently in cached, or -1

	log log.Logger
}

// OpenVirtualAudioStream opens a .furry file and wraps its Audio chunks in
// a VirtualAudioStream, a convenience combining Open and
// NewVirtualAudioStream for callers that only want the audio stream. The
// returned stream owns the underlying Reader; closing it via Destroy also
// releases the Reader's derived keys.
func OpenVirtualAudioStream(r io.ReaderAt, masterKey *crypto.MasterKey) (*VirtualAudioStream, error) {
	rd, err := Open(r, masterKey)
	if err != nil {
		return nil, err
	}

	return NewVirtualAudioStream(rd), nil
}

// Destroy releases the keys held by the stream's underlying Reader. Safe
// to call more than once; the stream must not be used afterward.
func (s *VirtualAudioStream) Destroy() {
	s.rd.Destroy()
}

// NewVirtualAudioStream wraps an already-open Reader's Audio chunks in a
// seekable stream. The Reader must outlive the returned stream.
func NewVirtualAudioStream(rd *Reader) *VirtualAudioStream {
	entries := rd.Index().AudioEntries()

	return &VirtualAudioStream{
		rd:          rd,
		entries:     entries,
		length:      rd.Index().Header.AudioStreamLen,
		cachedIndex: -1,
		log:         log.Component("stream"),
	}
}

// OriginalFormat reports the original audio container this stream's bytes
// were encoded as, as recorded in the index at pack time.
func (s *VirtualAudioStream) OriginalFormat() format.OriginalFormat {
	return s.rd.Index().Header.OriginalFormat
}

// Len returns the total length in bytes of the reassembled audio stream.
func (s *VirtualAudioStream) Len() uint64 {
	return s.length
}

// IsSeekable always reports true: every Audio chunk is independently
// addressable through the index, so random access never requires
// buffering chunks the caller has not asked for.
func (s *VirtualAudioStream) IsSeekable() bool {
	return true
}

// findChunkIndex returns the index into s.entries of the Audio chunk whose
// [VirtualOffset, VirtualOffset+PlainLen) interval contains offset, or -1
// if offset is at or past the end of the stream.
func (s *VirtualAudioStream) findChunkIndex(offset uint64) int {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].VirtualOffset+uint64(s.entries[i].PlainLen) > offset
	})
	if i >= len(s.entries) {
		return -1
	}
	return i
}

func (s *VirtualAudioStream) ensureChunkLoaded(idx int) error {
	if s.cachedIndex == idx {
		return nil
	}

	plaintext, err := s.rd.ReadChunk(s.entries[idx])
	if err != nil {
		return err
	}

	s.cached = plaintext
	s.cachedIndex = idx

	return nil
}

// Read implements io.Reader, serving bytes from the cursor position. It
// decrypts at most one new chunk per call that crosses a chunk boundary
// for the first time; subsequent reads within the same chunk are served
// from the single-chunk cache.
func (s *VirtualAudioStream) Read(p []byte) (int, error) {
	if s.cursor >= s.length {
		return 0, io.EOF
	}

	idx := s.findChunkIndex(s.cursor)
	if idx < 0 {
		return 0, io.EOF
	}

	if err := s.ensureChunkLoaded(idx); err != nil {
		return 0, err
	}

	entry := s.entries[idx]
	withinChunk := s.cursor - entry.VirtualOffset

	n := copy(p, s.cached[withinChunk:])
	s.cursor += uint64(n)

	return n, nil
}

// Seek implements io.Seeker. io.SeekEnd is relative to the stream length;
// an unknown whence or a negative resulting offset is rejected, the same
// way bytes.Reader rejects them. Seeking past the end is allowed and the
// next Read returns io.EOF.
func (s *VirtualAudioStream) Seek(offset int64, whence int) (int64, error) {
	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(s.cursor) + offset
	case io.SeekEnd:
		target = int64(s.length) + offset
	default:
		return 0, ferrors.New(ferrors.Io, "invalid whence")
	}

	if target < 0 {
		return 0, ferrors.New(ferrors.Io, "negative seek position")
	}

	s.cursor = uint64(target)
	s.log.Level(log.DebugLevel).Field("cursor", s.cursor).Message("seek")

	return target, nil
}
