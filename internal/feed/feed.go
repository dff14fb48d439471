// Package feed decodes the REST collections of the club API (events, news, videos and
// gallery photos). Field names vary between API versions, so every field is read from a
// list of accepted keys, first non-empty wins.
package feed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/events"
	"motorsport.az/club-web/internal/gallery"
	"motorsport.az/club-web/internal/markup"
	"motorsport.az/club-web/internal/media"
)

// Collection names as served by the API.
const (
	EventsCollection = "events"
	NewsCollection   = "news"
	VideosCollection = "videos"
	PhotosCollection = "gallery-photos"
)

var (
	errInvalidJSON = errors.New("invalid json")
	errNoArray     = errors.New("no record array")
)

// Article is a news post with its body rendered to sanitized HTML.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
	Summary  string `json:"summary,omitempty"`
	HTML     string `json:"html"`
}

// Video is a video entry with its resolved YouTube id. YouTubeID is "" when the URL does
// not reference a YouTube video.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date,omitempty"`
	URL       string `json:"url"`
	YouTubeID string `json:"youtubeId,omitempty"`
	Embed     string `json:"embedUrl,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// DecodeEvents reads the events collection.
func DecodeEvents(raw []byte) ([]events.Raw, error) {
	list, err := records(raw, EventsCollection)
	if err != nil {
		return nil, fmt.Errorf("feed: decode events: %w", err)
	}
	out := make([]events.Raw, 0, len(list))
	for _, item := range list {
		out = append(out, events.Raw{
			ID:              str(item, "id", "_id", "slug"),
			Title:           str(item, "title", "name"),
			Description:     str(item, "description", "content", "body"),
			Date:            str(item, "date", "event_date", "eventDate", "start_date", "startDate"),
			Location:        str(item, "location", "venue", "place"),
			Category:        str(item, "category", "type"),
			Image:           str(item, "image", "image_url", "imageUrl", "cover"),
			VideoURL:        str(item, "video", "video_url", "videoUrl", "youtube"),
			RegistrationURL: str(item, "registration_url", "registrationUrl", "register_url"),
			Status:          value(item, "status", "state"),
			Registration:    value(item, "registration_enabled", "registrationEnabled", "registration_open", "registration"),
		})
	}
	return out, nil
}

// DecodeNews reads the news collection. Bodies are BBCode and are converted to
// sanitized HTML.
func DecodeNews(raw []byte) ([]Article, error) {
	list, err := records(raw, NewsCollection)
	if err != nil {
		return nil, fmt.Errorf("feed: decode news: %w", err)
	}
	out := make([]Article, 0, len(list))
	for _, item := range list {
		out = append(out, Article{
			ID:       str(item, "id", "_id", "slug"),
			Title:    str(item, "title", "name"),
			Date:     str(item, "date", "published_at", "publishedAt", "created_at", "createdAt"),
			Category: str(item, "category", "tag"),
			Image:    str(item, "image", "image_url", "imageUrl", "cover"),
			Summary:  strings.TrimSpace(str(item, "summary", "excerpt", "description")),
			HTML:     markup.SafeHTML(str(item, "content", "body", "text")),
		})
	}
	return out, nil
}

// DecodeVideos reads the videos collection.
func DecodeVideos(raw []byte) ([]Video, error) {
	list, err := records(raw, VideosCollection)
	if err != nil {
		return nil, fmt.Errorf("feed: decode videos: %w", err)
	}
	out := make([]Video, 0, len(list))
	for _, item := range list {
		v := Video{
			ID:    str(item, "id", "_id"),
			Title: str(item, "title", "name"),
			Date:  str(item, "date", "created_at", "createdAt"),
			URL:   strings.TrimSpace(str(item, "url", "video_url", "videoUrl", "youtube", "link")),
		}
		if id := strings.TrimSpace(str(item, "youtube_id", "youtubeId")); media.ValidYouTubeID(id) {
			v.YouTubeID = id
		} else {
			v.YouTubeID = media.YouTubeID(v.URL)
		}
		v.Embed = media.EmbedURL(v.YouTubeID)
		v.Thumbnail = cms.FirstNonEmpty(str(item, "thumbnail", "thumbnail_url", "thumbnailUrl"), media.ThumbnailURL(v.YouTubeID))
		out = append(out, v)
	}
	return out, nil
}

// DecodePhotos reads the gallery-photos collection.
func DecodePhotos(raw []byte) ([]gallery.Photo, error) {
	list, err := records(raw, PhotosCollection)
	if err != nil {
		return nil, fmt.Errorf("feed: decode photos: %w", err)
	}
	out := make([]gallery.Photo, 0, len(list))
	for _, item := range list {
		out = append(out, gallery.Photo{
			ID:    str(item, "id", "_id"),
			Src:   strings.TrimSpace(str(item, "src", "url", "image", "image_url", "imageUrl")),
			Title: str(item, "title", "caption", "alt"),
			Album: str(item, "album", "album_name", "albumName", "category"),
		})
	}
	return out, nil
}

// records accepts a bare array or an object wrapping it under "data", "items" or the
// collection name.
func records(raw []byte, collection string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errInvalidJSON
	}
	root := gjson.ParseBytes(raw)
	list := root
	if root.IsObject() {
		for _, key := range []string{"data", "items", collection} {
			if candidate := root.Get(key); candidate.IsArray() {
				list = candidate
				break
			}
		}
	}
	if !list.IsArray() {
		return nil, errNoArray
	}
	var out []gjson.Result
	for _, item := range list.Array() {
		if item.IsObject() {
			out = append(out, item)
		}
	}
	return out, nil
}

func str(item gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := item.Get(k)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if s := v.String(); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// value returns the first present key as a plain Go value (string, float64, bool).
func value(item gjson.Result, keys ...string) any {
	for _, k := range keys {
		if v := item.Get(k); v.Exists() && v.Type != gjson.Null {
			return v.Value()
		}
	}
	return nil
}
