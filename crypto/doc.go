// Package crypto implements the cryptographic primitives of the .furry
// container: file-key derivation from a long-term master key, the
// chunk-sequenced nonce and fixed-layout AAD every chunk is bound to,
// AES-256-GCM sealing/opening with a detached tag, and the keyed BLAKE3
// mask used to obfuscate metadata chunks.
package crypto
