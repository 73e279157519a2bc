package furry

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weifurryovo/furry/format"
	"github.com/weifurryovo/furry/generator/randomness"
)

func testMasterKey(t *testing.T, fill byte) *MasterKey {
	t.Helper()
	mk, err := NewMasterKey(bytes.Repeat([]byte{fill}, 32))
	require.NoError(t, err)
	return mk
}

// memSink is a minimal in-memory io.WriteSeeker, enough for Pack's single
// seek-to-zero header patch at Finish time.
type memSink struct {
	buf    []byte
	cursor int64
}

func (m *memSink) Write(p []byte) (int, error) {
	end := m.cursor + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.cursor:end], p)
	m.cursor = end
	return len(p), nil
}

func (m *memSink) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.cursor + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	}
	m.cursor = target
	return target, nil
}

func (m *memSink) reader() *bytes.Reader {
	return bytes.NewReader(m.buf)
}

// S1: minimum file. Packing empty input yields a 184-byte file whose
// audio_stream_len is zero and whose format unpacks as Wav.
func TestScenario_S1_minimumFile(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x01)
	defer mk.Destroy()

	sink := &memSink{}
	err := Pack(sink, mk, OriginalFormatWav, nil, nil, 0)
	require.NoError(t, err)

	require.Equal(t, 184, len(sink.buf))

	rd, err := Unpack(sink.reader(), mk)
	require.NoError(t, err)
	defer rd.Destroy()

	require.Equal(t, uint64(0), rd.Index().Header.AudioStreamLen)
	require.Equal(t, OriginalFormatWav, rd.Index().Header.OriginalFormat)
}

// S2: small roundtrip with padding. Packing 16 bytes of audio plus a
// 10000-byte padding chunk yields a file of at least 10000 bytes and an
// exact unpack of the original 16 bytes.
func TestScenario_S2_smallRoundtripWithPadding(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x02)
	defer mk.Destroy()

	input := []byte("Short audio data")

	sink := &memSink{}
	err := Pack(sink, mk, OriginalFormatWav, []AudioChunk{{VirtualOffset: 0, Data: input}}, nil, 10000)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sink.buf), 10000)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	require.Equal(t, OriginalFormatWav, stream.OriginalFormat())

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, input, got)
}

// S3: multi-chunk. A 5000-byte input packed in 1024-byte pieces yields
// five Audio entries (four full chunks plus one 904-byte remainder) and
// roundtrips byte-for-byte.
func TestScenario_S3_multiChunk(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x03)
	defer mk.Destroy()

	input := bytes.Repeat([]byte(strings.Repeat("x", 50)), 100)
	require.Len(t, input, 5000)

	const chunkSize = 1024
	var audio []AudioChunk
	for off := 0; off < len(input); off += chunkSize {
		end := off + chunkSize
		if end > len(input) {
			end = len(input)
		}
		audio = append(audio, AudioChunk{VirtualOffset: uint64(off), Data: input[off:end]})
	}

	sink := &memSink{}
	err := Pack(sink, mk, OriginalFormatMp3, audio, nil, 0)
	require.NoError(t, err)

	rd, err := Unpack(sink.reader(), mk)
	require.NoError(t, err)
	defer rd.Destroy()

	entries := rd.Index().AudioEntries()
	require.Len(t, entries, 5)
	require.Equal(t, uint64(5000), rd.Index().Header.AudioStreamLen)
	require.Equal(t, uint32(904), entries[4].PlainLen)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, input, got)
}

// S4: header tamper. Flipping bit 0 of file_id (offset 24) on an
// otherwise valid file packed from S3's 5000-byte input (here as a single
// Audio chunk) makes Unpack fail authenticating the index, since file_id
// is bound into every chunk's AAD.
func TestScenario_S4_headerTamperFailsAuth(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x04)
	defer mk.Destroy()

	input := bytes.Repeat([]byte(strings.Repeat("x", 50)), 100)
	sink := &memSink{}
	err := Pack(sink, mk, OriginalFormatMp3, []AudioChunk{{VirtualOffset: 0, Data: input}}, nil, 0)
	require.NoError(t, err)

	sink.buf[24] ^= 0x01

	_, err = Unpack(sink.reader(), mk)
	require.Error(t, err)
}

// S5: virtual-stream seek. Seeking into the middle of a multi-chunk
// stream and reading 100 bytes returns exactly the corresponding slice of
// the original input.
func TestScenario_S5_virtualStreamSeek(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x05)
	defer mk.Destroy()

	input := bytes.Repeat([]byte(strings.Repeat("x", 50)), 100)
	const chunkSize = 1024
	var audio []AudioChunk
	for off := 0; off < len(input); off += chunkSize {
		end := off + chunkSize
		if end > len(input) {
			end = len(input)
		}
		audio = append(audio, AudioChunk{VirtualOffset: uint64(off), Data: input[off:end]})
	}

	sink := &memSink{}
	err := Pack(sink, mk, OriginalFormatMp3, audio, nil, 0)
	require.NoError(t, err)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	_, err = stream.Seek(2000, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, 100)
	n, err := io.ReadFull(stream, buf)
	require.NoError(t, err)
	require.Equal(t, 100, n)
	require.Equal(t, input[2000:2100], buf)
}

// S6: meta roundtrip. A Tags chunk and a CoverArt chunk both round-trip
// exactly through read_latest_meta, alongside an unrelated audio payload.
func TestScenario_S6_metaRoundtrip(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x06)
	defer mk.Destroy()

	audio := bytes.Repeat([]byte{0x42}, 1000)
	tags := []byte(`{"title":"t"}`)
	cover := append([]byte("image/png\x00"), []byte{1, 2, 3, 4, 5, 6, 7, 8}...)

	sink := &memSink{}
	err := Pack(sink, mk, OriginalFormatMp3,
		[]AudioChunk{{VirtualOffset: 0, Data: audio}},
		[]MetaChunk{
			{Kind: MetaKindTags, Data: tags},
			{Kind: MetaKindCoverArt, Data: cover},
		},
		0,
	)
	require.NoError(t, err)

	rd, err := Unpack(sink.reader(), mk)
	require.NoError(t, err)
	defer rd.Destroy()

	gotTags, ok, err := rd.ReadLatestMeta(MetaKindTags)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, tags, gotTags)

	gotCover, ok, err := rd.ReadLatestMeta(MetaKindCoverArt)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cover, gotCover)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	gotAudio, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, audio, gotAudio)
}

// TestPackStream exercises the streaming producer path against a payload
// too large to be handed to Pack as a slice of pre-chunked pieces,
// generated deterministically so the test needs no committed binary
// fixture.
func TestPackStream_largeDeterministicPayload(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x07)
	defer mk.Destroy()

	seed := bytes.Repeat([]byte{0x5A}, 256)
	drng, err := randomness.DRNG(seed, "furry-test-fixture")
	require.NoError(t, err)

	const payloadLen = 256 * 1024
	payload := make([]byte, payloadLen)
	_, err = io.ReadFull(drng, payload)
	require.NoError(t, err)

	sink := &memSink{}
	err = PackStream(sink, mk, OriginalFormatFlac, bytes.NewReader(payload), 4096, 5*time.Second, nil, 0)
	require.NoError(t, err)

	stream, err := OpenVirtualAudioStream(sink.reader(), mk)
	require.NoError(t, err)
	defer stream.Destroy()

	require.Equal(t, uint64(payloadLen), stream.Len())

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestNewMasterKey_rejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := NewMasterKey(make([]byte, 10))
	require.Error(t, err)
}

func TestReExportedConstants(t *testing.T) {
	t.Parallel()

	require.Equal(t, format.MetaKindTags, MetaKindTags)
	require.Equal(t, format.OriginalFormatFlac, OriginalFormatFlac)
}
