package feed

import (
	"context"
	"time"

	"motorsport.az/club-web/internal/events"
	"motorsport.az/club-web/internal/gallery"
)

// Source serves raw collection payloads; *cms.Client implements it.
type Source interface {
	Feed(ctx context.Context, name string) ([]byte, error)
}

// Events fetches and normalizes the events collection relative to now.
func Events(ctx context.Context, src Source, now time.Time) ([]events.Record, error) {
	raw, err := src.Feed(ctx, EventsCollection)
	if err != nil {
		return nil, err
	}
	list, err := DecodeEvents(raw)
	if err != nil {
		return nil, err
	}
	return events.NormalizeAll(list, now), nil
}

// News fetches the news collection.
func News(ctx context.Context, src Source) ([]Article, error) {
	raw, err := src.Feed(ctx, NewsCollection)
	if err != nil {
		return nil, err
	}
	return DecodeNews(raw)
}

// Videos fetches the videos collection, dropping entries that do not reference a
// YouTube video.
func Videos(ctx context.Context, src Source) ([]Video, error) {
	raw, err := src.Feed(ctx, VideosCollection)
	if err != nil {
		return nil, err
	}
	all, err := DecodeVideos(raw)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, v := range all {
		if v.YouTubeID != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// Photos fetches the gallery photos and arranges them into grid items.
func Photos(ctx context.Context, src Source) ([]gallery.GridItem, error) {
	raw, err := src.Feed(ctx, PhotosCollection)
	if err != nil {
		return nil, err
	}
	photos, err := DecodePhotos(raw)
	if err != nil {
		return nil, err
	}
	return gallery.Grid(photos), nil
}
