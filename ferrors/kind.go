// Package ferrors defines the error taxonomy shared by the crypto, format,
// and container packages. It exists as its own leaf package so that every
// layer of the codec (key derivation, binary layout, writer, reader) can
// raise and compare the same small set of failure kinds without importing
// each other.
package ferrors

// Kind classifies a codec failure into one of the categories a caller at the
// CLI/FFI/JNI boundary needs to map to an exit code or error enum. It is
// deliberately small and closed: new wire-format revisions get a new Kind
// added here, not a bespoke error type in some other package.
type Kind int

const (
	// Unknown is never returned by this module; it exists so the zero value
	// of Kind is recognizably invalid.
	Unknown Kind = iota
	// Io marks an underlying read/write/seek failure, surfaced verbatim.
	Io
	// InvalidMagic marks a file header magic mismatch.
	InvalidMagic
	// InvalidIndexMagic marks an index header magic mismatch.
	InvalidIndexMagic
	// InvalidChunkMagic marks a chunk record header magic mismatch.
	InvalidChunkMagic
	// UnsupportedVersion marks a file header version this codec can't read.
	UnsupportedVersion
	// UnsupportedIndexVersion marks an index header version this codec can't read.
	UnsupportedIndexVersion
	// UnsupportedChunkHeaderVersion marks a chunk header version this codec can't read.
	UnsupportedChunkHeaderVersion
	// InvalidHeaderSize marks a fixed-size header field mismatch.
	InvalidHeaderSize
	// CorruptIndex marks a structurally broken index: a length equation
	// failure, an unknown enum byte, or an index pointer landing on the
	// wrong chunk type.
	CorruptIndex
	// AeadFailure marks AES-256-GCM authentication failure: tamper, wrong
	// key, wrong file ID, or a mismatched bound header field.
	AeadFailure
	// HkdfExpand marks an HKDF expansion that produced fewer bytes than
	// requested.
	HkdfExpand
	// Random marks RNG exhaustion while generating a salt, file ID, or
	// padding content.
	Random
)

// String renders the kind for diagnostics and error messages.
func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case InvalidMagic:
		return "invalid_magic"
	case InvalidIndexMagic:
		return "invalid_index_magic"
	case InvalidChunkMagic:
		return "invalid_chunk_magic"
	case UnsupportedVersion:
		return "unsupported_version"
	case UnsupportedIndexVersion:
		return "unsupported_index_version"
	case UnsupportedChunkHeaderVersion:
		return "unsupported_chunk_header_version"
	case InvalidHeaderSize:
		return "invalid_header_size"
	case CorruptIndex:
		return "corrupt_index"
	case AeadFailure:
		return "aead_failure"
	case HkdfExpand:
		return "hkdf_expand"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}
