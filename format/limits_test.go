package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxMetaLen(t *testing.T) {
	t.Parallel()

	cap, capped := MaxMetaLen(MetaKindTags)
	require.True(t, capped)
	require.Equal(t, MaxTagsLen, cap)

	cap, capped = MaxMetaLen(MetaKindLyrics)
	require.True(t, capped)
	require.Equal(t, MaxLyricsLen, cap)

	cap, capped = MaxMetaLen(MetaKindCoverArt)
	require.True(t, capped)
	require.Equal(t, MaxCoverArtLen, cap)

	_, capped = MaxMetaLen(MetaKindUnknown)
	require.False(t, capped)
}
