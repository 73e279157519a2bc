// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/hashicorp/vault/api"
	"github.com/mitchellh/mapstructure"

	"github.com/weifurryovo/furry/kms"
	"github.com/weifurryovo/furry/kms/vault/logical"
)

// service adapts a Vault Transit backend key to the kms.Service
// (Encryptor/Decryptor) contract consumed by kms_masterkey.go. Unlike a
// general-purpose Transit client it never signs, verifies, rotates, or
// exports key material: this codec only ever wraps and unwraps a 32-byte
// MasterKey.
type service struct {
	logical   logical.Logical
	mountPath string
	keyName   string

	keyType     kms.KeyType
	lastVersion int
	canEncrypt  bool
	canDecrypt  bool

	mu sync.RWMutex
}

// New instantiates a Vault transit backend encryption service used to wrap
// and unwrap a furry MasterKey via the Transit backend's encrypt/decrypt
// endpoints.
func New(ctx context.Context, client *api.Client, mountPath, keyName string) (kms.Service, error) {
	// Check arguments
	if client == nil {
		return nil, errors.New("client must not be nil")
	}
	if mountPath == "" {
		mountPath = "transit"
	}
	if keyName == "" {
		return nil, errors.New("key name must not be blank")
	}

	// Create the service instance
	s := &service{
		logical:     client.Logical(),
		mountPath:   strings.TrimSuffix(path.Clean(mountPath), "/"),
		keyName:     keyName,
		lastVersion: 1,
	}

	// Resolve remote key features
	if err := s.resolveKeyCapabilities(ctx); err != nil {
		return nil, fmt.Errorf("error occurred during key feature resolution: %w", err)
	}

	return s, nil
}

// -----------------------------------------------------------------------------

func (s *service) Encrypt(ctx context.Context, cleartext []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Check arguments
	if !s.canEncrypt {
		return nil, errors.New("encrypt operation is not supported by the key")
	}
	if s.lastVersion == 0 {
		return nil, errors.New("key has an invalid version")
	}
	if cleartext == nil {
		return nil, fmt.Errorf("cleartext could not be nil")
	}

	// Prepare query
	encryptPath := sanitizePath(path.Join(url.PathEscape(s.mountPath), "encrypt", url.PathEscape(s.keyName)))
	data := map[string]interface{}{
		"plaintext":   base64.StdEncoding.EncodeToString(cleartext),
		"key_version": s.lastVersion,
	}

	// Send to Vault.
	secret, err := s.logical.WriteWithContext(ctx, encryptPath, data)
	if err != nil {
		return nil, fmt.Errorf("unable to encrypt with '%s:v%d' key: %w", s.keyName, s.lastVersion, err)
	}
	if secret == nil {
		return nil, fmt.Errorf("unable to encrypt with '%s:v%d' key: nil response", s.keyName, s.lastVersion)
	}

	// Parse server response.
	if cipherText, ok := secret.Data["ciphertext"].(string); ok && cipherText != "" {
		// Remove prefix
		cipherText = strings.TrimPrefix(cipherText, fmt.Sprintf("vault:v%d:", s.lastVersion))
		return []byte(cipherText), nil
	}

	// Return error.
	return nil, errors.New("could not encrypt given data")
}

func (s *service) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Check arguments
	if !s.canDecrypt {
		return nil, errors.New("decrypt operation is not supported by the key")
	}
	if s.lastVersion == 0 {
		return nil, errors.New("key has an invalid version")
	}
	if ciphertext == nil {
		return nil, fmt.Errorf("ciphertext could not be nil")
	}

	// Prepare query
	decryptPath := sanitizePath(path.Join(url.PathEscape(s.mountPath), "decrypt", url.PathEscape(s.keyName)))
	data := map[string]interface{}{
		"ciphertext": fmt.Sprintf("vault:v%d:%s", s.lastVersion, string(ciphertext)),
	}

	// Send to Vault.
	secret, err := s.logical.WriteWithContext(ctx, decryptPath, data)
	if err != nil {
		return nil, fmt.Errorf("unable to decrypt with '%s:v%d' key: %w", s.keyName, s.lastVersion, err)
	}
	if secret == nil {
		return nil, fmt.Errorf("unable to decrypt with '%s:v%d' key: nil response", s.keyName, s.lastVersion)
	}

	// Parse server response.
	if plainText64, ok := secret.Data["plaintext"].(string); ok && plainText64 != "" {
		plainText, err := base64.StdEncoding.DecodeString(plainText64)
		if err != nil {
			return nil, fmt.Errorf("unable to decode secret: %w", err)
		}

		// Return no error
		return plainText, nil
	}

	// Return error.
	return nil, errors.New("could not decrypt given data")
}

// -----------------------------------------------------------------------------

func (s *service) resolveKeyCapabilities(ctx context.Context) error {
	// Prepare query
	keyPath := sanitizePath(path.Join(url.PathEscape(s.mountPath), "keys", url.PathEscape(s.keyName)))

	// Send to Vault.
	response, err := s.logical.ReadWithContext(ctx, keyPath)
	if err != nil {
		return fmt.Errorf("unable to retrieve key information with %q key: %w", s.keyName, err)
	}
	if response == nil {
		return fmt.Errorf("unable to retrieve key information with %q key: nil response", s.keyName)
	}

	return s.decodeKeyInformation(response)
}

func (s *service) decodeKeyInformation(response *api.Secret) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Decode key information
	keyInfo := struct {
		KeyType            string `mapstructure:"type"`
		LatestVersion      int    `mapstructure:"latest_version"`
		SupportsEncryption bool   `mapstructure:"supports_encryption"`
		SupportsDecryption bool   `mapstructure:"supports_decryption"`
	}{}
	if errKi := mapstructure.WeakDecode(response.Data, &keyInfo); errKi != nil {
		return fmt.Errorf("unable to decode '%s' key information: %w", s.keyName, errKi)
	}

	// Add local keytype
	switch keyInfo.KeyType {
	case "aes128-gcm96", "aes256-gcm96", "chacha20-poly1305":
		s.keyType = kms.KeyTypeSymmetric
	case "hmac":
		s.keyType = kms.KeyTypeHMAC
	case "rsa-2048", "rsa-3072", "rsa-4096":
		s.keyType = kms.KeyTypeRSA
	case "ecdsa-p256", "ecdsa-p384", "ecdsa-p521":
		s.keyType = kms.KeyTypeECDSA
	case "ed25519":
		s.keyType = kms.KeyTypeEd25519
	default:
		return errors.New("unsupported key type")
	}

	// Assign features to service
	s.lastVersion = keyInfo.LatestVersion
	s.canDecrypt = keyInfo.SupportsDecryption
	s.canEncrypt = keyInfo.SupportsEncryption

	return nil
}
