package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/weifurryovo/furry/crypto"
	"github.com/weifurryovo/furry/ferrors"
	"github.com/weifurryovo/furry/format"
	"github.com/weifurryovo/furry/ioutil"
	"github.com/weifurryovo/furry/log"
)

// Writer is a single-use, single-threaded streaming producer of a .furry
// file: Create, zero or more WriteAudioChunk/WriteMetaChunk/
// WritePaddingChunk calls, then Finish. It requires a random-access
// (seekable) sink because Finish patches the 96-byte header in place
// after the index has been appended.
type Writer struct {
	w             io.WriteSeeker
	header        *format.FileHeader
	keys          *crypto.FileKeys
	index         *format.Index
	chunkSeq      uint64
	currentOffset uint64
	log           log.Logger
	done          bool
}

// Create generates a fresh FileID and Salt, derives file keys from
// masterKey, and writes the placeholder file header at offset 0. w must
// support Seek; the returned Writer retains no reference to masterKey.
func Create(w io.WriteSeeker, masterKey *crypto.MasterKey, originalFormat format.OriginalFormat) (*Writer, error) {
	fileID, err := crypto.GenerateFileID()
	if err != nil {
		return nil, err
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}

	keys, err := crypto.DeriveFileKeys(masterKey, salt)
	if err != nil {
		return nil, err
	}

	header := format.NewFileHeader(fileID, salt)

	if _, err := w.Seek(0, io.SeekStart); err != nil {
		keys.Destroy()
		return nil, ioErr(err)
	}

	encoded := header.Encode()
	if _, err := w.Write(encoded[:]); err != nil {
		keys.Destroy()
		return nil, ioErr(err)
	}

	return &Writer{
		w:             w,
		header:        header,
		keys:          keys,
		index:         format.NewIndex(originalFormat),
		chunkSeq:      0,
		currentOffset: uint64(format.HeaderSize),
		log:           log.Component("writer"),
	}, nil
}

// WriteAudioChunk encrypts and appends an Audio chunk. The writer does not
// enforce that virtualOffset equals the running sum of preceding Audio
// chunks' plain_len; correct callers must supply monotonically tiling
// offsets (see the index's tiling invariant), and the writer trusts them.
func (wr *Writer) WriteAudioChunk(data []byte, virtualOffset uint64) error {
	_, err := wr.writeChunk(format.ChunkTypeAudio, data, virtualOffset, format.MetaKindUnknown, 0)
	return err
}

// WriteMetaChunk encrypts and appends a Meta chunk of the given kind. If
// chunkFlags has FlagMetaXOR set, data is XOR-masked with the keyed BLAKE3
// stream (keyed with this chunk's sequence) before AEAD encryption.
func (wr *Writer) WriteMetaChunk(kind format.MetaKind, data []byte, chunkFlags uint8) error {
	if limit, capped := format.MaxMetaLen(kind); capped && len(data) > limit {
		return ferrors.New(ferrors.Io, fmt.Sprintf("meta chunk of kind %d is %d bytes, exceeding the %d byte cap", kind, len(data), limit))
	}

	_, err := wr.writeChunk(format.ChunkTypeMeta, data, 0, kind, chunkFlags)
	return err
}

// WriteMetaChunkFromReader behaves like WriteMetaChunk but reads its
// payload from src instead of an in-memory slice, capping the amount
// buffered in memory at kind's size limit so an oversized or unbounded
// source cannot be used to exhaust memory before the cap check runs.
func (wr *Writer) WriteMetaChunkFromReader(kind format.MetaKind, src io.Reader, chunkFlags uint8) error {
	limit, capped := format.MaxMetaLen(kind)
	if !capped {
		limit = 1 << 30 // meta kinds with no declared cap still get a sane upper bound
	}

	var buf bytes.Buffer
	limited := ioutil.LimitWriter(&buf, limit)

	n, err := io.Copy(limited, src)
	if err != nil {
		return ferrors.Wrap(ferrors.Io, "unable to buffer meta chunk content", err)
	}
	if capped && n > int64(limit) {
		return ferrors.New(ferrors.Io, fmt.Sprintf("meta chunk of kind %d exceeds the %d byte cap", kind, limit))
	}

	return wr.WriteMetaChunk(kind, buf.Bytes(), chunkFlags)
}

// WritePaddingChunk fills size bytes from the cryptographic RNG and writes
// them as a Padding chunk. Its content is ignored by Reader but
// authenticated like any other chunk.
func (wr *Writer) WritePaddingChunk(size int) error {
	padding, err := crypto.GeneratePadding(size)
	if err != nil {
		return err
	}

	_, err = wr.writeChunk(format.ChunkTypePadding, padding, 0, format.MetaKindUnknown, 0)
	return err
}

func (wr *Writer) writeChunk(chunkType format.ChunkType, data []byte, virtualOffset uint64, metaKind format.MetaKind, chunkFlags uint8) (*format.ChunkRecordHeader, error) {
	if wr.done {
		return nil, ferrors.New(ferrors.Io, "writer already finished")
	}

	seq := wr.chunkSeq
	wr.chunkSeq++

	hdr := format.NewChunkRecordHeader(chunkType, seq, virtualOffset, uint32(len(data)))
	hdr.ChunkFlags = chunkFlags

	plaintext := make([]byte, len(data))
	copy(plaintext, data)

	if chunkType == format.ChunkTypeMeta && chunkFlags&format.FlagMetaXOR != 0 {
		if err := crypto.ApplyMetaMask(wr.keys.MetaXORKey(), seq, plaintext); err != nil {
			return nil, err
		}
	}

	headerBytes := hdr.Encode()
	nonce := crypto.BuildNonce(wr.keys.NoncePrefix(), seq)
	aad := crypto.BuildAAD(wr.header.FileID, wr.header.Version, wr.header.Flags, headerBytes)

	tag, err := crypto.SealDetached(wr.keys.AEADKey(), nonce, aad[:], plaintext)
	if err != nil {
		return nil, err
	}

	fileOffset := wr.currentOffset

	if _, err := wr.w.Write(headerBytes[:]); err != nil {
		return nil, ioErr(err)
	}
	if _, err := wr.w.Write(plaintext); err != nil {
		return nil, ioErr(err)
	}
	if _, err := wr.w.Write(tag[:]); err != nil {
		return nil, ioErr(err)
	}

	recordLen := hdr.RecordLen()
	wr.currentOffset += uint64(recordLen)

	switch chunkType {
	case format.ChunkTypeAudio:
		wr.index.AddAudioEntry(seq, fileOffset, recordLen, hdr.PlainLen, virtualOffset)
	case format.ChunkTypeMeta:
		wr.index.AddMetaEntry(seq, fileOffset, recordLen, hdr.PlainLen, metaKind, chunkFlags)
	case format.ChunkTypePadding:
		wr.index.AddPaddingEntry(seq, fileOffset, recordLen, hdr.PlainLen)
	}

	wr.log.Level(log.DebugLevel).Field("chunk_seq", seq).Field("chunk_type", chunkType).Messagef("wrote %d byte chunk at offset %d", hdr.PlainLen, fileOffset)

	return hdr, nil
}

// Finish serializes the accumulated index, writes it as an encrypted Index
// chunk, patches the file header with the index's offset and total
// length, and returns the underlying sink. The Writer must not be used
// again afterward. A failure here leaves a file that will not open;
// callers must delete it rather than retry in place.
func (wr *Writer) Finish() (io.WriteSeeker, error) {
	if wr.done {
		return nil, ferrors.New(ferrors.Io, "writer already finished")
	}
	wr.done = true
	defer wr.keys.Destroy()

	indexData := wr.index.Encode()

	seq := wr.chunkSeq
	wr.chunkSeq++

	hdr := format.NewChunkRecordHeader(format.ChunkTypeIndex, seq, 0, uint32(len(indexData)))
	headerBytes := hdr.Encode()
	nonce := crypto.BuildNonce(wr.keys.NoncePrefix(), seq)
	aad := crypto.BuildAAD(wr.header.FileID, wr.header.Version, wr.header.Flags, headerBytes)

	tag, err := crypto.SealDetached(wr.keys.AEADKey(), nonce, aad[:], indexData)
	if err != nil {
		return nil, err
	}

	indexOffset := wr.currentOffset

	if _, err := wr.w.Write(headerBytes[:]); err != nil {
		return nil, ioErr(err)
	}
	if _, err := wr.w.Write(indexData); err != nil {
		return nil, ioErr(err)
	}
	if _, err := wr.w.Write(tag[:]); err != nil {
		return nil, ioErr(err)
	}

	recordLen := hdr.RecordLen()
	wr.currentOffset += uint64(recordLen)

	wr.header.IndexOffset = indexOffset
	wr.header.IndexTotalLen = recordLen

	if _, err := wr.w.Seek(0, io.SeekStart); err != nil {
		return nil, ioErr(err)
	}

	encoded := wr.header.Encode()
	if _, err := wr.w.Write(encoded[:]); err != nil {
		return nil, ioErr(err)
	}

	wr.log.Level(log.DebugLevel).Field("index_offset", indexOffset).Field("index_total_len", recordLen).Message("finalized .furry file")

	return wr.w, nil
}
