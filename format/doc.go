// Package format implements the on-disk binary layout of the .furry
// container: the 96-byte file header, the 40-byte chunk record header, and
// the 32-byte index header plus its 48-byte entries. Everything here is
// little-endian and fixed-size; encoding and decoding are pure functions
// over byte slices with no I/O of their own.
package format
