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

// Reader opens a finalized .furry file for random access: it parses and
// validates the header, derives file keys, decrypts the index, and then
// serves individual chunks on demand without touching any chunk it is not
// asked for.
type Reader struct {
	r      io.ReaderAt
	header *format.FileHeader
	keys   *crypto.FileKeys
	index  *format.Index
	log    log.Logger
}

// Open parses the file header at offset 0, derives file keys from
// masterKey and the header's salt, then locates, decrypts, and parses the
// index described by index_offset/index_total_len.
func Open(r io.ReaderAt, masterKey *crypto.MasterKey) (*Reader, error) {
	headerBuf := make([]byte, format.HeaderSize)
	if _, err := readAt(r, headerBuf, 0); err != nil {
		return nil, err
	}

	header, err := format.DecodeFileHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	keys, err := crypto.DeriveFileKeys(masterKey, header.Salt)
	if err != nil {
		return nil, err
	}

	index, err := readAndDecryptIndex(r, header, keys)
	if err != nil {
		keys.Destroy()
		return nil, err
	}

	return &Reader{
		r:      r,
		header: header,
		keys:   keys,
		index:  index,
		log:    log.Component("reader"),
	}, nil
}

func readAndDecryptIndex(r io.ReaderAt, header *format.FileHeader, keys *crypto.FileKeys) (*format.Index, error) {
	if header.IndexTotalLen < format.ChunkHeaderLen+format.TagLen {
		return nil, ferrors.New(ferrors.CorruptIndex, "index_total_len too small to hold a chunk record")
	}

	record := make([]byte, header.IndexTotalLen)
	if _, err := readAt(r, record, int64(header.IndexOffset)); err != nil {
		return nil, err
	}

	chunkHdr, plaintext, err := decryptChunkRecord(record, header, keys)
	if err != nil {
		return nil, err
	}

	if chunkHdr.ChunkType != format.ChunkTypeIndex {
		return nil, ferrors.New(ferrors.CorruptIndex, fmt.Sprintf("chunk at index_offset has type 0x%02x, expected Index", chunkHdr.ChunkType))
	}

	return format.ParseIndex(plaintext)
}

// decryptChunkRecord parses a chunk record's header, opens its AEAD
// envelope in place, and returns the header plus the recovered plaintext.
// It never removes the META mask; unmasking a Meta chunk with FlagMetaXOR
// set is left to the caller.
func decryptChunkRecord(record []byte, header *format.FileHeader, keys *crypto.FileKeys) (*format.ChunkRecordHeader, []byte, error) {
	chunkHdr, err := format.DecodeChunkRecordHeader(record)
	if err != nil {
		return nil, nil, err
	}

	expectedLen := chunkHdr.RecordLen()
	if uint32(len(record)) != expectedLen {
		return nil, nil, ferrors.New(ferrors.InvalidHeaderSize, fmt.Sprintf("chunk record length mismatch: got %d bytes, expected %d", len(record), expectedLen))
	}

	body := record[format.ChunkHeaderLen : format.ChunkHeaderLen+chunkHdr.PlainLen]
	var tag [format.TagLen]byte
	copy(tag[:], record[format.ChunkHeaderLen+chunkHdr.PlainLen:])

	headerBytes := chunkHdr.Encode()
	nonce := crypto.BuildNonce(keys.NoncePrefix(), chunkHdr.ChunkSeq)
	aad := crypto.BuildAAD(header.FileID, header.Version, header.Flags, headerBytes)

	plaintext := make([]byte, len(body))
	copy(plaintext, body)

	if err := crypto.OpenDetached(keys.AEADKey(), nonce, aad[:], plaintext, tag); err != nil {
		return nil, nil, err
	}

	return chunkHdr, plaintext, nil
}

// ReadChunk reads and decrypts the chunk described by entry, unmasking its
// payload first if it is a meta chunk with FlagMetaXOR set.
func (rd *Reader) ReadChunk(entry format.IndexEntry) ([]byte, error) {
	record := make([]byte, entry.RecordLen)
	if _, err := readAt(rd.r, record, int64(entry.FileOffset)); err != nil {
		return nil, err
	}

	chunkHdr, plaintext, err := decryptChunkRecord(record, rd.header, rd.keys)
	if err != nil {
		return nil, err
	}

	if chunkHdr.ChunkType == format.ChunkTypeMeta && chunkHdr.ChunkFlags&format.FlagMetaXOR != 0 {
		if err := crypto.ApplyMetaMask(rd.keys.MetaXORKey(), chunkHdr.ChunkSeq, plaintext); err != nil {
			return nil, err
		}
	}

	rd.log.Level(log.DebugLevel).Field("chunk_seq", entry.ChunkSeq).Messagef("read %d byte chunk", len(plaintext))

	return plaintext, nil
}

// ReadLatestMeta returns the plaintext of the highest-chunk_seq Meta entry
// of the given kind, enforcing this module's per-kind size cap against the
// index's recorded plain_len before decrypting anything. It returns false
// with a nil error when the file carries no chunk of that kind.
func (rd *Reader) ReadLatestMeta(kind format.MetaKind) ([]byte, bool, error) {
	entry, ok := rd.index.LatestMetaEntry(kind)
	if !ok {
		return nil, false, nil
	}

	if limit, capped := format.MaxMetaLen(kind); capped && int(entry.PlainLen) > limit {
		return nil, false, ferrors.New(ferrors.InvalidHeaderSize, fmt.Sprintf("meta chunk of kind %d declares %d bytes, exceeding the %d byte cap", kind, entry.PlainLen, limit))
	}

	data, err := rd.ReadChunk(entry)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

// WriteMetaTo decrypts the latest Meta chunk of the given kind and copies
// it to w, hard-capped at that kind's size limit as a second line of
// defense on top of the pre-decryption check in ReadLatestMeta. It
// reports whether a chunk of that kind existed.
func (rd *Reader) WriteMetaTo(kind format.MetaKind, w io.Writer) (bool, error) {
	data, ok, err := rd.ReadLatestMeta(kind)
	if err != nil || !ok {
		return ok, err
	}

	limit, capped := format.MaxMetaLen(kind)
	if !capped {
		limit = len(data)
	}

	if _, err := ioutil.LimitCopy(w, bytes.NewReader(data), uint64(limit)); err != nil {
		return true, ferrors.Wrap(ferrors.Io, "unable to copy meta chunk content", err)
	}

	return true, nil
}

// Header returns the file's decoded header.
func (rd *Reader) Header() *format.FileHeader {
	return rd.header
}

// Index returns the file's decrypted index.
func (rd *Reader) Index() *format.Index {
	return rd.index
}

// Destroy zeroes this reader's derived file keys. Safe to call more than
// once; the Reader must not be used afterward.
func (rd *Reader) Destroy() {
	rd.keys.Destroy()
}

func readAt(r io.ReaderAt, buf []byte, offset int64) (int, error) {
	n, err := io.ReadFull(io.NewSectionReader(r, offset, int64(len(buf))), buf)
	if err != nil {
		return n, ioErr(err)
	}
	return n, nil
}
