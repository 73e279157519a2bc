package furry

import (
	"context"
	"fmt"

	"github.com/weifurryovo/furry/crypto"
	"github.com/weifurryovo/furry/ferrors"
	"github.com/weifurryovo/furry/kms"
)

// WrapMasterKeyWithKMS encrypts key's raw bytes under svc (a Vault Transit
// backend or any other kms.Encryptor), producing an opaque blob safe to
// store alongside the catalog entry that references a .furry file. It does
// not call key.Destroy; the caller still owns key's lifetime.
func WrapMasterKeyWithKMS(ctx context.Context, svc kms.Encryptor, key *MasterKey) ([]byte, error) {
	wrapped, err := svc.Encrypt(ctx, key.Bytes())
	if err != nil {
		return nil, ferrors.Wrap(ferrors.Io, "unable to wrap master key with kms service", err)
	}
	return wrapped, nil
}

// MasterKeyFromKMS unwraps a blob produced by WrapMasterKeyWithKMS through
// svc (a Vault Transit backend or any other kms.Decryptor) and returns a
// ready-to-use MasterKey. The decrypted plaintext is copied into a locked
// buffer and the intermediate slice is not retained.
func MasterKeyFromKMS(ctx context.Context, svc kms.Decryptor, wrapped []byte) (*MasterKey, error) {
	raw, err := svc.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.Io, "unable to unwrap master key with kms service", err)
	}

	if len(raw) != crypto.MasterKeyLen {
		return nil, ferrors.New(ferrors.Io, fmt.Sprintf("kms service returned %d bytes, expected a %d byte master key", len(raw), crypto.MasterKeyLen))
	}

	return crypto.NewMasterKey(raw)
}
