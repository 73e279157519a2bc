// Package furry implements the .furry container format: a chunked,
// AEAD-authenticated envelope around a compressed audio stream with a
// random-access index and optional out-of-band metadata (cover art,
// lyrics, tags).
//
// Pack streams audio and metadata chunks into a seekable sink and
// finalizes the file with an encrypted index; Unpack opens a finalized
// file, decrypts its index, and hands back a Reader for on-demand chunk
// access, while OpenVirtualAudioStream hands back a VirtualAudioStream for
// sequential/seekable playback.
//
// Every byte on disk past the fixed cleartext header is authenticated:
// tampering with a chunk, the index, or the bytes bound into a chunk's
// associated data causes decryption to fail rather than silently
// returning corrupted content.
package furry
