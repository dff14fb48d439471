package about

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorsport.az/club-web/internal/cms"
)

func TestStatsPairsBySuffix(t *testing.T) {
	t.Parallel()

	page := cms.Page{Namespace: "about", Sections: []cms.Section{
		{ID: "ABOUT_STAT_VALUE_MEMBERS", Value: "210"},
		{ID: "ABOUT_STAT_LABEL_TRACKS", Value: "Trek"},
		{ID: "ABOUT_STAT_VALUE_TRACKS", Value: "3"},
		{ID: "ABOUT_STAT_LABEL_ORPHAN", Value: "Yalnız etiket"},
		{ID: "ABOUT_STAT_VALUE_MEMBERS", Value: "999"},
		{ID: "ABOUT_STATS_TITLE", Value: "not a stat"},
	}}

	got := Stats(page)
	require.Len(t, got, 5)
	assert.Equal(t, Stat{ID: "members", Label: "Üzv", Value: "210"}, got[0])
	assert.Equal(t, Stat{ID: "TRACKS", Label: "Trek", Value: "3"}, got[4])
	assert.Equal(t, legacyStats[1:], got[1:4])
}

func TestValuesOverlay(t *testing.T) {
	t.Parallel()

	page := cms.Page{Sections: []cms.Section{
		{ID: "ABOUT_VALUE_TITLE_SAFETY", Value: "Təhlükəsizlik hər şeydən öncə"},
		{ID: "ABOUT_VALUE_DESC_YOUTH", Value: "Gənclər üçün məktəb"},
		{ID: "ABOUT_VALUE_TITLE_YOUTH", Value: "Gənclik"},
		{ID: "ABOUT_VALUE_ICON_YOUTH", Value: "graduation-cap"},
	}}

	got := Values(page)
	require.Len(t, got, 5)
	assert.Equal(t, "Təhlükəsizlik hər şeydən öncə", got[0].Title)
	assert.Equal(t, "shield", got[0].Icon)
	assert.Equal(t, Value{ID: "YOUTH", Icon: "graduation-cap", Title: "Gənclik", Desc: "Gənclər üçün məktəb"}, got[4])
	assert.Equal(t, "Təhlükəsizlik", legacyValues[0].Title)
}
