package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	entries := []Entry{
		{Position: 3, ClubName: "FC Venelles"},
		{Position: 5, ClubName: "AS Aix Nord"},
	}

	t.Run("first entry without a hint", func(t *testing.T) {
		got := Pick(entries, "")
		require.NotNil(t, got)
		assert.Equal(t, 3, got.Position)
	})

	t.Run("hint contained in club name", func(t *testing.T) {
		got := Pick(entries, "aix")
		require.NotNil(t, got)
		assert.Equal(t, 5, got.Position)
	})

	t.Run("club name contained in hint", func(t *testing.T) {
		got := Pick(entries, "Association Sportive AS Aix Nord 13")
		require.NotNil(t, got)
		assert.Equal(t, 5, got.Position)
	})

	t.Run("unmatched hint falls back to first entry", func(t *testing.T) {
		got := Pick(entries, "Olympique Lambesc")
		require.NotNil(t, got)
		assert.Equal(t, 3, got.Position)
	})

	t.Run("nil on empty table", func(t *testing.T) {
		assert.Nil(t, Pick(nil, "anything"))
	})
}
