package format

// Per-meta-kind plaintext size caps, enforced by both Writer (before
// encrypting) and Reader (against the index's recorded plain_len, before
// decrypting). A file or caller claiming a larger payload is rejected
// without ever allocating for it.
const (
	MaxTagsLen     = 256 * 1024
	MaxLyricsLen   = 2 * 1024 * 1024
	MaxCoverArtLen = 64 * 1024 * 1024
)

// MaxMetaLen returns the size cap for kind and whether one is defined.
// MetaKindUnknown carries no cap.
func MaxMetaLen(kind MetaKind) (int, bool) {
	switch kind {
	case MetaKindTags:
		return MaxTagsLen, true
	case MetaKindLyrics:
		return MaxLyricsLen, true
	case MetaKindCoverArt:
		return MaxCoverArtLen, true
	default:
		return 0, false
	}
}
