package furry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weifurryovo/furry/crypto"
)

// xorKMS is a trivial stand-in for a production KMS backend: it "wraps" a
// key by XORing it with a fixed pad, good enough to exercise the
// WrapMasterKeyWithKMS/MasterKeyFromKMS contract without standing up a
// real Vault Transit backend.
type xorKMS struct {
	pad []byte
}

func (x *xorKMS) xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i := range in {
		out[i] = in[i] ^ x.pad[i%len(x.pad)]
	}
	return out
}

func (x *xorKMS) Encrypt(_ context.Context, cleartext []byte) ([]byte, error) {
	return x.xor(cleartext), nil
}

func (x *xorKMS) Decrypt(_ context.Context, encrypted []byte) ([]byte, error) {
	return x.xor(encrypted), nil
}

func TestWrapAndUnwrapMasterKeyWithKMS(t *testing.T) {
	t.Parallel()

	mk := testMasterKey(t, 0x5C)
	defer mk.Destroy()

	svc := &xorKMS{pad: []byte{0xFF, 0x00, 0xAA}}

	wrapped, err := WrapMasterKeyWithKMS(context.Background(), svc, mk)
	require.NoError(t, err)
	require.Len(t, wrapped, crypto.MasterKeyLen)

	recovered, err := MasterKeyFromKMS(context.Background(), svc, wrapped)
	require.NoError(t, err)
	defer recovered.Destroy()

	require.Equal(t, mk.Bytes(), recovered.Bytes())
}

func TestMasterKeyFromKMS_wrongLengthRejected(t *testing.T) {
	t.Parallel()

	svc := &xorKMS{pad: []byte{0x01}}

	_, err := MasterKeyFromKMS(context.Background(), svc, []byte{1, 2, 3})
	require.Error(t, err)
}
