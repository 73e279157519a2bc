package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/weifurryovo/furry/ferrors"
)

// GenerateFileID draws a fresh 16-byte file identifier from the operating
// system's cryptographic RNG.
func GenerateFileID() ([FileIDLen]byte, error) {
	var id [FileIDLen]byte
	if _, err := io.ReadFull(rand.Reader, id[:]); err != nil {
		return id, ferrors.Wrap(ferrors.Random, "unable to generate file id", err)
	}
	return id, nil
}

// GenerateSalt draws a fresh 16-byte KDF salt from the operating system's
// cryptographic RNG.
func GenerateSalt() ([SaltLen]byte, error) {
	var salt [SaltLen]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return salt, ferrors.Wrap(ferrors.Random, "unable to generate salt", err)
	}
	return salt, nil
}

// GeneratePadding draws size bytes of cryptographically random filler used
// to pad a file's on-disk length without leaking any structure about the
// real payload.
func GeneratePadding(size int) ([]byte, error) {
	if size < 0 {
		return nil, ferrors.New(ferrors.Random, fmt.Sprintf("invalid padding size %d", size))
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, ferrors.Wrap(ferrors.Random, "unable to generate padding content", err)
	}
	return buf, nil
}
