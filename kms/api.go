package kms

import "context"

// Encryptor describes encryption operations contract.
type Encryptor interface {
	Encrypt(ctx context.Context, cleartext []byte) ([]byte, error)
}

// Decryptor describes decryption operations contract.
type Decryptor interface {
	Decrypt(ctx context.Context, encrypted []byte) ([]byte, error)
}

//go:generate mockgen -destination mock/service.mock.go -package mock github.com/weifurryovo/furry/kms Service

// Service represents the master-key-wrapping operation service contract. It
// is deliberately narrower than a general-purpose Vault Transit client: this
// codec only ever wraps and unwraps a 32-byte MasterKey, so it never signs,
// verifies, rotates, or exports key material.
type Service interface {
	Encryptor
	Decryptor
}

// KeyType represents the type of the key backing a Service.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeSymmetric
	KeyTypeRSA
	KeyTypeEd25519
	KeyTypeECDSA
	KeyTypeHMAC
)
