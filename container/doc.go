// Package container implements the random-access producer and consumer of
// the .furry format: Writer streams chunks into a seekable sink and
// finalizes the file with an encrypted index and a patched header; Reader
// opens a finalized file, decrypts its index, and serves individual chunks
// on demand; VirtualAudioStream exposes the concatenated Audio chunks as a
// single seekable byte stream for a downstream decoder.
package container

import "github.com/weifurryovo/furry/ferrors"

func ioErr(err error) error {
	return ferrors.Wrap(ferrors.Io, "i/o failure", err)
}
