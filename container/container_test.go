package container

import (
	"bytes"
	"io"

	"github.com/weifurryovo/furry/ferrors"
)

// memSink is a minimal in-memory io.WriteSeeker backing test files: the
// Writer only ever seeks back to offset 0 to patch the header, so a simple
// byte slice with a cursor is enough.
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
	default:
		return 0, ferrors.New(ferrors.Io, "invalid whence")
	}
	if target < 0 {
		return 0, ferrors.New(ferrors.Io, "negative seek position")
	}
	m.cursor = target
	return target, nil
}

func (m *memSink) reader() *bytes.Reader {
	return bytes.NewReader(m.buf)
}
