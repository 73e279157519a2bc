package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/hkdf"

	"github.com/weifurryovo/furry/ferrors"
)

const (
	// MasterKeyLen is the required length of the externally supplied
	// long-term secret.
	MasterKeyLen = 32
	// SaltLen is the length of the per-file salt stored in cleartext in
	// the file header.
	SaltLen = 16
	// FileIDLen is the length of the per-file random identifier bound
	// into every ciphertext's AAD.
	FileIDLen = 16
	// AEADKeyLen is the length of the derived AES-256-GCM key.
	AEADKeyLen = 32
	// NoncePrefixLen is the length of the derived per-file nonce prefix.
	NoncePrefixLen = 4
	// MetaXORKeyLen is the length of the derived keyed-BLAKE3 mask key.
	MetaXORKeyLen = 32
)

// KDF info labels. These are part of the wire contract: changing any of
// them invalidates every existing .furry file under the same master key.
const (
	infoAEADKey     = "furry/v1/aead_key"
	infoNoncePrefix = "furry/v1/nonce_prefix"
	infoMetaXORKey  = "furry/v1/meta_xor_key"
)

// MasterKey holds the process-level long-term secret as an opaque,
// locked buffer. It must be released with Destroy once the caller is done
// opening or creating files with it; the buffer is not reusable afterward.
type MasterKey struct {
	buf *memguard.LockedBuffer
}

// NewMasterKey copies raw into a locked buffer. The caller retains
// ownership of raw and is responsible for wiping it if desired; this
// module never reads raw again after construction.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	if len(raw) != MasterKeyLen {
		return nil, ferrors.New(ferrors.Io, fmt.Sprintf("master key must be %d bytes, got %d", MasterKeyLen, len(raw)))
	}

	buf := memguard.NewBuffer(MasterKeyLen)
	copy(buf.Bytes(), raw)

	return &MasterKey{buf: buf}, nil
}

// Bytes exposes the raw key material for the duration of a derivation
// call. Callers must not retain the returned slice past the call.
func (k *MasterKey) Bytes() []byte {
	return k.buf.Bytes()
}

// Destroy wipes the master key from memory. Safe to call more than once.
func (k *MasterKey) Destroy() {
	k.buf.Destroy()
}

// -----------------------------------------------------------------------------

// FileKeys holds the three sub-keys derived from (MasterKey, Salt) for a
// single file. Its lifetime is the owning Reader or Writer instance; it
// must be zeroed via Destroy when that instance is released.
type FileKeys struct {
	aeadKey     *memguard.LockedBuffer
	metaXORKey  *memguard.LockedBuffer
	noncePrefix [NoncePrefixLen]byte
}

// DeriveFileKeys expands (master, salt) into aead_key, nonce_prefix, and
// meta_xor_key using HKDF-SHA256 with three distinct info labels.
func DeriveFileKeys(master *MasterKey, salt [SaltLen]byte) (*FileKeys, error) {
	keys := &FileKeys{
		aeadKey:    memguard.NewBuffer(AEADKeyLen),
		metaXORKey: memguard.NewBuffer(MetaXORKeyLen),
	}

	if err := expand(master.Bytes(), salt[:], infoAEADKey, keys.aeadKey.Bytes()); err != nil {
		keys.Destroy()
		return nil, err
	}

	var noncePrefix [NoncePrefixLen]byte
	if err := expand(master.Bytes(), salt[:], infoNoncePrefix, noncePrefix[:]); err != nil {
		keys.Destroy()
		return nil, err
	}
	keys.noncePrefix = noncePrefix

	if err := expand(master.Bytes(), salt[:], infoMetaXORKey, keys.metaXORKey.Bytes()); err != nil {
		keys.Destroy()
		return nil, err
	}

	return keys, nil
}

func expand(secret, salt []byte, info string, out []byte) error {
	h := hkdf.New(sha256.New, secret, salt, []byte(info))
	if _, err := io.ReadFull(h, out); err != nil {
		return ferrors.Wrap(ferrors.HkdfExpand, fmt.Sprintf("unable to derive %d bytes for %q", len(out), info), err)
	}
	return nil
}

// AEADKey returns the derived AES-256-GCM key. The returned slice must not
// be retained past the call.
func (k *FileKeys) AEADKey() []byte {
	return k.aeadKey.Bytes()
}

// MetaXORKey returns the derived keyed-BLAKE3 mask key. The returned slice
// must not be retained past the call.
func (k *FileKeys) MetaXORKey() []byte {
	return k.metaXORKey.Bytes()
}

// NoncePrefix returns the derived 4-byte nonce prefix.
func (k *FileKeys) NoncePrefix() [NoncePrefixLen]byte {
	return k.noncePrefix
}

// Destroy zeroes all derived key material. Safe to call more than once.
func (k *FileKeys) Destroy() {
	if k.aeadKey != nil {
		k.aeadKey.Destroy()
	}
	if k.metaXORKey != nil {
		k.metaXORKey.Destroy()
	}
	for i := range k.noncePrefix {
		k.noncePrefix[i] = 0
	}
}
