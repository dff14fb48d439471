// Package gallery arranges gallery photos into a grid of single photos and albums.
package gallery

import (
	"strings"

	"motorsport.az/club-web/internal/textnorm"
)

// Photo is one gallery image.
type Photo struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Title string `json:"title"`
	Album string `json:"album,omitempty"`
}

// Kind tags a grid item.
type Kind string

const (
	KindSingle Kind = "single"
	KindAlbum  Kind = "album"
)

// GridItem is either a single photo (Kind == KindSingle, Photo set) or an album
// (Kind == KindAlbum, Title and Photos set).
type GridItem struct {
	Kind   Kind    `json:"kind"`
	Photo  *Photo  `json:"photo,omitempty"`
	Title  string  `json:"title,omitempty"`
	Photos []Photo `json:"photos,omitempty"`
}

// Cover returns the photo representing the item in the grid.
func (g GridItem) Cover() (Photo, bool) {
	if g.Kind == KindSingle && g.Photo != nil {
		return *g.Photo, true
	}
	if len(g.Photos) > 0 {
		return g.Photos[0], true
	}
	return Photo{}, false
}

// defaultAlbums are album names (normalized) that mean "no album".
var defaultAlbums = map[string]struct{}{
	"":              {},
	"default":       {},
	"none":          {},
	"noalbum":       {},
	"general":       {},
	"other":         {},
	"uncategorized": {},
	"umumi":         {},
	"diger":         {},
	"albomsuz":      {},
	"kateqoriyasiz": {},
	"null":          {},
	"undefined":     {},
}

// IsDefaultAlbum reports whether album names the catch-all bucket.
func IsDefaultAlbum(album string) bool {
	_, ok := defaultAlbums[textnorm.Normalize(album)]
	return ok
}

// Grid groups photos by normalized album name. Photos without a real album stay single.
// Each album sits where its first photo appeared, keeps the first-seen spelling of its
// name and lists its photos in input order. Photos without a source are skipped.
func Grid(photos []Photo) []GridItem {
	out := make([]GridItem, 0, len(photos))
	albums := map[string]int{}
	for _, p := range photos {
		if strings.TrimSpace(p.Src) == "" {
			continue
		}
		if IsDefaultAlbum(p.Album) {
			photo := p
			out = append(out, GridItem{Kind: KindSingle, Photo: &photo})
			continue
		}
		key := textnorm.Normalize(p.Album)
		if i, ok := albums[key]; ok {
			out[i].Photos = append(out[i].Photos, p)
			continue
		}
		albums[key] = len(out)
		out = append(out, GridItem{Kind: KindAlbum, Title: strings.TrimSpace(p.Album), Photos: []Photo{p}})
	}
	return out
}
