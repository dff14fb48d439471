package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorsport.az/club-web/internal/cms"
)

type block struct {
	ID    string
	Title string
	Icon  string
	Lines []string
}

var blockPattern = Pattern{
	Prefix:     "BLOCK",
	Fields:     []string{"ID", "TITLE", "ICON"},
	ItemFields: []string{"TEXT"},
}

var blockSpec = Spec[block]{
	Pattern: blockPattern,
	Build: func(g Group) (block, bool) {
		b := block{ID: g.Text("ID"), Title: g.Text("TITLE"), Icon: g.Text("ICON")}
		for _, it := range g.Items {
			if line := it.Text("TEXT"); line != "" {
				b.Lines = append(b.Lines, line)
			}
		}
		return b, b.ID != "" || b.Title != ""
	},
	Key: func(b block) string { return cms.FirstNonEmpty(b.ID, b.Title) },
	Complete: func(b block) bool {
		return b.Title != "" && len(b.Lines) > 0
	},
	Overlay: func(base, dyn block) block {
		return block{
			ID:    Prefer(dyn.ID, base.ID),
			Title: Prefer(dyn.Title, base.Title),
			Icon:  Prefer(dyn.Icon, base.Icon),
			Lines: PreferList(dyn.Lines, base.Lines),
		}
	},
}

func TestScanOrdersGroupsAndItems(t *testing.T) {
	t.Parallel()

	secs := []cms.Section{
		{ID: "BLOCK_10_TITLE", Value: "ten"},
		{ID: "BLOCK_2_ITEM_3_TEXT", Value: "c"},
		{ID: "block_2_title", Value: "two"},
		{ID: "BLOCK_2_ITEM_1_TEXT", Value: "a"},
		{ID: "BLOCK_2_ITEM_1_TEXT", Value: "dup"},
		{ID: "BLOCK_X_TITLE", Value: "not an index"},
		{ID: "BLOCK_2_UNKNOWN", Value: "ignored"},
		{ID: "OTHER_1_TITLE", Value: "ignored"},
		{ID: "BLOCK_1_TITLE", Value: " "},
		{ID: "BLOCK_1_TITLE", Value: "one"},
	}

	groups := Scan(secs, blockPattern)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{groups[0].Key, groups[1].Key, groups[2].Key})
	assert.Equal(t, "one", groups[0].Text("title"))
	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "1", groups[1].Items[0].Key)
	assert.Equal(t, "a", groups[1].Items[0].Text("TEXT"))
	assert.Equal(t, "c", groups[1].Items[1].Text("TEXT"))
}

func TestScanFieldFirstLayout(t *testing.T) {
	t.Parallel()

	p := Pattern{Prefix: "STAT", Layout: FieldFirst, Fields: []string{"LABEL", "VALUE"}}
	secs := []cms.Section{
		{ID: "STAT_VALUE_MEMBERS", Value: "120"},
		{ID: "STAT_LABEL_2", Value: "Second"},
		{ID: "STAT_LABEL_MEMBERS", Value: "Üzvlər"},
		{ID: "STAT_LABEL_1", Value: "First"},
		{ID: "STAT_LABEL_", Value: "no suffix"},
		{ID: "STAT_VALUE_TRACK_DAYS", Value: "8"},
	}
	groups := Scan(secs, p)
	require.Len(t, groups, 4)
	assert.Equal(t, "1", groups[0].Key)
	assert.Equal(t, "2", groups[1].Key)
	assert.Equal(t, "MEMBERS", groups[2].Key)
	assert.Equal(t, "Üzvlər", groups[2].Text("LABEL"))
	assert.Equal(t, "120", groups[2].Text("VALUE"))
	assert.Equal(t, "TRACK_DAYS", groups[3].Key)
}

func TestMergeOverlaysAndAppends(t *testing.T) {
	t.Parallel()

	legacy := []block{
		{ID: "general", Title: "Ümumi", Icon: "file", Lines: []string{"l1", "l2"}},
		{ID: "safety", Title: "Təhlükəsizlik", Icon: "shield", Lines: []string{"s1"}},
	}
	secs := []cms.Section{
		{ID: "BLOCK_1_ID", Value: "GENERAL"},
		{ID: "BLOCK_1_ICON", Value: "book"},
		{ID: "BLOCK_3_TITLE", Value: "Yeni bölmə"},
		{ID: "BLOCK_3_ITEM_1_TEXT", Value: "n1"},
		{ID: "BLOCK_2_ID", Value: "Safety"},
		{ID: "BLOCK_2_ITEM_1_TEXT", Value: "s-new"},
	}

	got := Merge(secs, blockSpec, legacy)
	require.Len(t, got, 3)

	assert.Equal(t, block{ID: "GENERAL", Title: "Ümumi", Icon: "book", Lines: []string{"l1", "l2"}}, got[0])
	assert.Equal(t, block{ID: "Safety", Title: "Təhlükəsizlik", Icon: "shield", Lines: []string{"s-new"}}, got[1])
	assert.Equal(t, block{Title: "Yeni bölmə", Lines: []string{"n1"}}, got[2])

	// legacy inputs are untouched
	assert.Equal(t, "file", legacy[0].Icon)
	assert.Equal(t, []string{"s1"}, legacy[1].Lines)
}

func TestMergeDropsIncompleteDynamicGroups(t *testing.T) {
	t.Parallel()

	secs := []cms.Section{
		{ID: "BLOCK_1_TITLE", Value: "Only a title"},
		{ID: "BLOCK_2_ICON", Value: "orphan icon"},
		{ID: "BLOCK_3_TITLE", Value: "Complete"},
		{ID: "BLOCK_3_ITEM_1_TEXT", Value: "x"},
		{ID: "BLOCK_4_TITLE", Value: "complete"},
		{ID: "BLOCK_4_ITEM_1_TEXT", Value: "duplicate key"},
	}
	got := Merge(secs, blockSpec, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Complete", got[0].Title)
}

func TestMergeWithoutSectionsReturnsLegacy(t *testing.T) {
	t.Parallel()

	legacy := []block{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	assert.Equal(t, legacy, Merge(nil, blockSpec, legacy))
	assert.Empty(t, Merge[block](nil, blockSpec, nil))
}

func TestPreferList(t *testing.T) {
	t.Parallel()

	base := []string{"a"}
	got := PreferList(nil, base)
	got[0] = "changed"
	assert.Equal(t, "a", base[0])
	assert.Equal(t, []string{"b"}, PreferList([]string{"b"}, base))
	assert.Nil(t, PreferList[string](nil, nil))
}
