package crypto

import (
	"crypto/rand"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestSealOpenDetached_roundtrip(t *testing.T) {
	t.Parallel()

	f := fuzz.New().NilChance(0).NumElements(1, 4096)

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	var nonce [NonceLen]byte
	_, err = rand.Read(nonce[:])
	require.NoError(t, err)

	var aad []byte
	f.Fuzz(&aad)

	var plaintext []byte
	f.Fuzz(&plaintext)

	original := make([]byte, len(plaintext))
	copy(original, plaintext)

	tag, err := SealDetached(key, nonce, aad, plaintext)
	require.NoError(t, err)

	err = OpenDetached(key, nonce, aad, plaintext, tag)
	require.NoError(t, err)
	require.Equal(t, original, plaintext)
}

func TestSealOpenDetached_emptyPlaintext(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	var nonce [NonceLen]byte
	aad := []byte("some aad")

	var plaintext []byte

	tag, err := SealDetached(key, nonce, aad, plaintext)
	require.NoError(t, err)

	err = OpenDetached(key, nonce, aad, plaintext, tag)
	require.NoError(t, err)
}

func TestOpenDetached_tamperedCiphertextFails(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	var nonce [NonceLen]byte
	aad := []byte("aad")
	plaintext := []byte("hello, furry")

	tag, err := SealDetached(key, nonce, aad, plaintext)
	require.NoError(t, err)

	plaintext[0] ^= 0xFF

	err = OpenDetached(key, nonce, aad, plaintext, tag)
	require.Error(t, err)
}

func TestOpenDetached_tamperedAADFails(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	var nonce [NonceLen]byte
	plaintext := []byte("hello, furry")

	tag, err := SealDetached(key, nonce, []byte("aad-a"), plaintext)
	require.NoError(t, err)

	err = OpenDetached(key, nonce, []byte("aad-b"), plaintext, tag)
	require.Error(t, err)
}

func TestOpenDetached_tamperedTagFails(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	var nonce [NonceLen]byte
	aad := []byte("aad")
	plaintext := []byte("hello, furry")

	tag, err := SealDetached(key, nonce, aad, plaintext)
	require.NoError(t, err)
	tag[0] ^= 0xFF

	err = OpenDetached(key, nonce, aad, plaintext, tag)
	require.Error(t, err)
}

func TestOpenDetached_wrongKeyFails(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	var nonce [NonceLen]byte
	aad := []byte("aad")
	plaintext := []byte("hello, furry")

	tag, err := SealDetached(key, nonce, aad, plaintext)
	require.NoError(t, err)

	otherKey := make([]byte, 32)
	otherKey[0] = 0x01

	err = OpenDetached(otherKey, nonce, aad, plaintext, tag)
	require.Error(t, err)
}
