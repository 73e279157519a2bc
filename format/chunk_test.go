package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkRecordHeader_encodeDecodeRoundtrip(t *testing.T) {
	t.Parallel()

	h := NewChunkRecordHeader(ChunkTypeAudio, 42, 1024, 4096)
	h.ChunkFlags = FlagMetaXOR

	encoded := h.Encode()
	require.Len(t, encoded, ChunkHeaderLen)

	decoded, err := DecodeChunkRecordHeader(encoded[:])
	require.NoError(t, err)

	require.Equal(t, h.ChunkType, decoded.ChunkType)
	require.Equal(t, h.ChunkFlags, decoded.ChunkFlags)
	require.Equal(t, h.ChunkSeq, decoded.ChunkSeq)
	require.Equal(t, h.VirtualOffset, decoded.VirtualOffset)
	require.Equal(t, h.PlainLen, decoded.PlainLen)
}

func TestChunkRecordHeader_recordLen(t *testing.T) {
	t.Parallel()

	h := NewChunkRecordHeader(ChunkTypeAudio, 0, 0, 100)
	require.Equal(t, uint32(ChunkHeaderLen+100+TagLen), h.RecordLen())
}

func TestDecodeChunkRecordHeader_errors(t *testing.T) {
	t.Parallel()

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeChunkRecordHeader(make([]byte, 4))
		require.Error(t, err)
	})

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()
		h := NewChunkRecordHeader(ChunkTypeAudio, 0, 0, 0)
		encoded := h.Encode()
		encoded[0] ^= 0xFF
		_, err := DecodeChunkRecordHeader(encoded[:])
		require.Error(t, err)
	})

	t.Run("unknown chunk type", func(t *testing.T) {
		t.Parallel()
		h := NewChunkRecordHeader(ChunkTypeAudio, 0, 0, 0)
		encoded := h.Encode()
		encoded[8] = 0xEE
		_, err := DecodeChunkRecordHeader(encoded[:])
		require.Error(t, err)
	})

	t.Run("wrong header version", func(t *testing.T) {
		t.Parallel()
		h := NewChunkRecordHeader(ChunkTypeAudio, 0, 0, 0)
		encoded := h.Encode()
		encoded[6] = 0xFF
		_, err := DecodeChunkRecordHeader(encoded[:])
		require.Error(t, err)
	})
}

func TestChunkType_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, ChunkTypeAudio.Valid())
	require.True(t, ChunkTypeIndex.Valid())
	require.True(t, ChunkTypeMeta.Valid())
	require.True(t, ChunkTypePadding.Valid())
	require.False(t, ChunkType(0x00).Valid())
	require.False(t, ChunkType(0xFF).Valid())
}
