package container

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weifurryovo/furry/format"
)

func TestVirtualAudioStream_sequentialRead(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0xB0)
	defer mk.Destroy()

	sink := &memSink{}
	wr, err := Create(sink, mk, format.OriginalFormatOgg)
	require.NoError(t, err)

	chunk1 := bytes.Repeat([]byte{0x01}, 300)
	chunk2 := bytes.Repeat([]byte{0x02}, 700)
	chunk3 := bytes.Repeat([]byte{0x03}, 128)

	require.NoError(t, wr.WriteAudioChunk(chunk1, 0))
	require.NoError(t, wr.WriteAudioChunk(chunk2, uint64(len(chunk1))))
	require.NoError(t, wr.WriteAudioChunk(chunk3, uint64(len(chunk1)+len(chunk2))))

	_, err = wr.Finish()
	require.NoError(t, err)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	want := append(append(append([]byte{}, chunk1...), chunk2...), chunk3...)
	require.Equal(t, uint64(len(want)), stream.Len())
	require.Equal(t, format.OriginalFormatOgg, stream.OriginalFormat())
	require.True(t, stream.IsSeekable())

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestVirtualAudioStream_seekAcrossChunks(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0xB1)
	defer mk.Destroy()

	sink := &memSink{}
	wr, err := Create(sink, mk, format.OriginalFormatOgg)
	require.NoError(t, err)

	chunk1 := bytes.Repeat([]byte{0xAA}, 100)
	chunk2 := bytes.Repeat([]byte{0xBB}, 100)

	require.NoError(t, wr.WriteAudioChunk(chunk1, 0))
	require.NoError(t, wr.WriteAudioChunk(chunk2, uint64(len(chunk1))))

	_, err = wr.Finish()
	require.NoError(t, err)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	pos, err := stream.Seek(150, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(150), pos)

	buf := make([]byte, 10)
	n, err := stream.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, chunk2[50:60], buf)

	// Seek back to the start of chunk1, re-decrypting it.
	_, err = stream.Seek(0, io.SeekStart)
	require.NoError(t, err)

	n, err = stream.Read(buf)
	require.NoError(t, err)
	require.Equal(t, chunk1[:10], buf[:n])
}

func TestVirtualAudioStream_seekPastEndReadsEOF(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0xB2)
	defer mk.Destroy()

	sink := &memSink{}
	wr, err := Create(sink, mk, format.OriginalFormatWav)
	require.NoError(t, err)
	require.NoError(t, wr.WriteAudioChunk([]byte("short"), 0))
	_, err = wr.Finish()
	require.NoError(t, err)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	_, err = stream.Seek(1000, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, 10)
	_, err = stream.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestVirtualAudioStream_negativeSeekRejected(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0xB3)
	defer mk.Destroy()

	sink := &memSink{}
	wr, err := Create(sink, mk, format.OriginalFormatWav)
	require.NoError(t, err)
	require.NoError(t, wr.WriteAudioChunk([]byte("audio"), 0))
	_, err = wr.Finish()
	require.NoError(t, err)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	_, err = stream.Seek(-1, io.SeekStart)
	require.Error(t, err)
}
