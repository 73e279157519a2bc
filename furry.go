package furry

import (
	"io"
	"os"
	"time"

	"github.com/weifurryovo/furry/container"
	"github.com/weifurryovo/furry/crypto"
	"github.com/weifurryovo/furry/ferrors"
	"github.com/weifurryovo/furry/format"
	"github.com/weifurryovo/furry/ioutil"
	"github.com/weifurryovo/furry/ioutil/atomic"
)

// Re-exported building blocks, so a caller driving the chunk-by-chunk API
// only needs to import this package.
type (
	// MasterKey is the long-term, 32-byte secret every .furry file's keys
	// are derived from.
	MasterKey = crypto.MasterKey
	// Writer streams chunks into a seekable sink.
	Writer = container.Writer
	// Reader serves chunks from a finalized file on demand.
	Reader = container.Reader
	// VirtualAudioStream exposes a file's Audio chunks as one seekable
	// byte stream.
	VirtualAudioStream = container.VirtualAudioStream
	// MetaKind identifies an out-of-band metadata chunk's content.
	MetaKind = format.MetaKind
	// OriginalFormat hints the container the reassembled audio stream
	// was originally encoded as.
	OriginalFormat = format.OriginalFormat
)

// Meta kinds and original formats, re-exported for callers of this
// package's top-level API.
const (
	MetaKindUnknown  = format.MetaKindUnknown
	MetaKindCoverArt = format.MetaKindCoverArt
	MetaKindLyrics   = format.MetaKindLyrics
	MetaKindTags     = format.MetaKindTags

	OriginalFormatUnknown = format.OriginalFormatUnknown
	OriginalFormatWav     = format.OriginalFormatWav
	OriginalFormatMp3     = format.OriginalFormatMp3
	OriginalFormatOgg     = format.OriginalFormatOgg
	OriginalFormatFlac    = format.OriginalFormatFlac
)

// NewMasterKey wraps a 32-byte secret for use with Pack and Unpack.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	return crypto.NewMasterKey(raw)
}

// AudioChunk is one piece of the compressed audio stream, placed at
// virtualOffset in the reassembled stream.
type AudioChunk struct {
	VirtualOffset uint64
	Data          []byte
}

// MetaChunk is one piece of out-of-band metadata. If Masked is true, the
// chunk's payload is XOR-masked with the keyed-BLAKE3 stream before
// encryption, so recovering it takes the derived mask key as well as the
// AEAD key. Masking leaves the payload's length unchanged.
type MetaChunk struct {
	Kind   MetaKind
	Data   []byte
	Masked bool
}

// Pack streams audio and metadata chunks into w, a padding chunk of
// paddingSize bytes if paddingSize > 0, and finalizes the file. w must
// support Seek.
func Pack(w io.WriteSeeker, masterKey *MasterKey, originalFormat OriginalFormat, audio []AudioChunk, meta []MetaChunk, paddingSize int) error {
	wr, err := container.Create(w, masterKey, originalFormat)
	if err != nil {
		return err
	}

	for _, a := range audio {
		if err := wr.WriteAudioChunk(a.Data, a.VirtualOffset); err != nil {
			return err
		}
	}

	for _, m := range meta {
		var flags uint8
		if m.Masked {
			flags |= format.FlagMetaXOR
		}
		if err := wr.WriteMetaChunk(m.Kind, m.Data, flags); err != nil {
			return err
		}
	}

	if paddingSize > 0 {
		if err := wr.WritePaddingChunk(paddingSize); err != nil {
			return err
		}
	}

	_, err = wr.Finish()
	return err
}

// PackStream is Pack for an audio source too large to hold in memory as a
// slice of chunks: it reads audioSrc in fixed chunkSize pieces, writing
// one Audio chunk per piece, until audioSrc is exhausted. Each read is
// bounded by readTimeout, guarding against a stalled upstream producer
// hanging the whole pack operation indefinitely.
func PackStream(w io.WriteSeeker, masterKey *MasterKey, originalFormat OriginalFormat, audioSrc io.Reader, chunkSize int, readTimeout time.Duration, meta []MetaChunk, paddingSize int) error {
	wr, err := container.Create(w, masterKey, originalFormat)
	if err != nil {
		return err
	}

	guarded := ioutil.TimeoutReader(audioSrc, readTimeout)

	var virtualOffset uint64
	buf := make([]byte, chunkSize)
	for {
		n, err := io.ReadFull(guarded, buf)
		if n > 0 {
			if werr := wr.WriteAudioChunk(buf[:n], virtualOffset); werr != nil {
				return werr
			}
			virtualOffset += uint64(n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return ferrors.Wrap(ferrors.Io, "unable to read audio source", err)
		}
	}

	for _, m := range meta {
		var flags uint8
		if m.Masked {
			flags |= format.FlagMetaXOR
		}
		if err := wr.WriteMetaChunk(m.Kind, m.Data, flags); err != nil {
			return err
		}
	}

	if paddingSize > 0 {
		if err := wr.WritePaddingChunk(paddingSize); err != nil {
			return err
		}
	}

	_, err = wr.Finish()
	return err
}

// PackFile is Pack against a destination path: it builds the file in a
// temporary sibling and atomically renames it into place on success,
// leaving filename untouched on any failure.
func PackFile(filename string, masterKey *MasterKey, originalFormat OriginalFormat, audio []AudioChunk, meta []MetaChunk, paddingSize int) error {
	return atomic.WriteSeekable(filename, func(f *os.File) error {
		return Pack(f, masterKey, originalFormat, audio, meta, paddingSize)
	})
}

// Unpack opens a finalized .furry file, decrypting its index. The caller
// must call Destroy on the returned Reader once done with it.
func Unpack(r io.ReaderAt, masterKey *MasterKey) (*Reader, error) {
	return container.Open(r, masterKey)
}

// OpenVirtualAudioStream opens a finalized .furry file directly as a
// seekable audio stream, skipping the lower-level Reader API. The caller
// must call Destroy on the returned stream once done with it.
func OpenVirtualAudioStream(r io.ReaderAt, masterKey *MasterKey) (*VirtualAudioStream, error) {
	return container.OpenVirtualAudioStream(r, masterKey)
}

// ExtractAudioToFile decodes a file's VirtualAudioStream and atomically
// writes its full content to destFilename.
func ExtractAudioToFile(r io.ReaderAt, masterKey *MasterKey, destFilename string) error {
	stream, err := OpenVirtualAudioStream(r, masterKey)
	if err != nil {
		return err
	}
	defer stream.Destroy()

	if err := atomic.WriteFile(destFilename, io.LimitReader(stream, int64(stream.Len()))); err != nil {
		return ferrors.Wrap(ferrors.Io, "unable to extract audio stream to file", err)
	}

	return nil
}
