package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridGroupsAlbumsInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	photos := []Photo{
		{ID: "1", Src: "/a.jpg", Album: "Bakı Rally 2024"},
		{ID: "2", Src: "/b.jpg", Album: "Ümumi"},
		{ID: "3", Src: "/c.jpg", Album: "BAKI rally-2024"},
		{ID: "4", Src: "/d.jpg"},
		{ID: "5", Src: "", Album: "Drift"},
		{ID: "6", Src: "/f.jpg", Album: "Drift"},
		{ID: "7", Src: "/g.jpg", Album: "Bakı Rally 2024"},
	}

	grid := Grid(photos)
	require.Len(t, grid, 4)

	assert.Equal(t, KindAlbum, grid[0].Kind)
	assert.Equal(t, "Bakı Rally 2024", grid[0].Title)
	ids := []string{}
	for _, p := range grid[0].Photos {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "3", "7"}, ids)

	assert.Equal(t, KindSingle, grid[1].Kind)
	assert.Equal(t, "2", grid[1].Photo.ID)
	assert.Equal(t, KindSingle, grid[2].Kind)
	assert.Equal(t, "4", grid[2].Photo.ID)

	assert.Equal(t, KindAlbum, grid[3].Kind)
	require.Len(t, grid[3].Photos, 1)
	cover, ok := grid[3].Cover()
	require.True(t, ok)
	assert.Equal(t, "6", cover.ID)
}

func TestGridDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	photos := []Photo{{ID: "1", Src: "/a.jpg"}}
	grid := Grid(photos)
	grid[0].Photo.Title = "changed"
	assert.Empty(t, photos[0].Title)
}

func TestIsDefaultAlbum(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "  ", "Default", "Digər", "no-album", "Kateqoriyasız"} {
		assert.True(t, IsDefaultAlbum(name), name)
	}
	assert.False(t, IsDefaultAlbum("Drift 2023"))
}
