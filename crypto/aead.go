package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/weifurryovo/furry/ferrors"
)

// TagLen is the AES-256-GCM authentication tag length.
const TagLen = 16

// SealDetached encrypts plaintext in place with AES-256-GCM and returns the
// detached 16-byte authentication tag. key must be 32 bytes and nonce must
// be NonceLen bytes; aad is bound but not encrypted.
func SealDetached(key []byte, nonce [NonceLen]byte, aad []byte, plaintext []byte) ([TagLen]byte, error) {
	var tag [TagLen]byte

	gcm, err := newGCM(key)
	if err != nil {
		return tag, err
	}

	sealed := gcm.Seal(nil, nonce[:], plaintext, aad)
	copy(plaintext, sealed[:len(sealed)-TagLen])
	copy(tag[:], sealed[len(sealed)-TagLen:])

	return tag, nil
}

// OpenDetached decrypts ciphertext in place with AES-256-GCM, verifying it
// against the given detached tag and aad. On authentication failure the
// buffer's contents are undefined and the caller must discard it.
func OpenDetached(key []byte, nonce [NonceLen]byte, aad []byte, ciphertext []byte, tag [TagLen]byte) error {
	gcm, err := newGCM(key)
	if err != nil {
		return err
	}

	sealed := make([]byte, 0, len(ciphertext)+TagLen)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag[:]...)

	opened, err := gcm.Open(ciphertext[:0], nonce[:], sealed, aad)
	if err != nil {
		return ferrors.Wrap(ferrors.AeadFailure, "chunk authentication failed", err)
	}
	copy(ciphertext[:len(opened)], opened)

	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.AeadFailure, "unable to initialize AES-256 block cipher", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.AeadFailure, "unable to initialize GCM mode", err)
	}

	return gcm, nil
}
