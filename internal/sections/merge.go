package sections

import (
	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/textnorm"
)

// Spec binds a Pattern to a record type.
type Spec[T any] struct {
	Pattern Pattern
	// Build converts a scanned group into a record. Returning false drops the group.
	Build func(Group) (T, bool)
	// Key returns the identity of a record (its id, else its title). It is normalized
	// before comparison.
	Key func(T) string
	// Complete reports whether a dynamic record may be emitted on its own, without a
	// legacy record to fill its gaps. Nil accepts every built record.
	Complete func(T) bool
	// Overlay returns base with the populated fields of dyn applied. Nil replaces base
	// with dyn.
	Overlay func(base, dyn T) T
}

// Merge regroups secs according to spec and overlays the result onto legacy.
//
// Output order is legacy order (each record overlaid by the dynamic group sharing its
// normalized key, if any), followed by the remaining dynamic records in group order.
// Groups without a key, and dynamic-only records that are not Complete, are dropped.
// Neither secs nor legacy is modified.
func Merge[T any](secs []cms.Section, spec Spec[T], legacy []T) []T {
	type dynamic struct {
		key    string
		record T
	}

	var dyn []dynamic
	index := map[string]int{}
	if spec.Build != nil && spec.Key != nil {
		for _, g := range Scan(secs, spec.Pattern) {
			rec, ok := spec.Build(g)
			if !ok {
				continue
			}
			key := textnorm.Normalize(spec.Key(rec))
			if key == "" {
				continue
			}
			if _, dup := index[key]; dup {
				continue
			}
			index[key] = len(dyn)
			dyn = append(dyn, dynamic{key: key, record: rec})
		}
	}

	out := make([]T, 0, len(legacy)+len(dyn))
	used := make([]bool, len(dyn))
	for _, base := range legacy {
		if spec.Key != nil {
			if i, ok := index[textnorm.Normalize(spec.Key(base))]; ok {
				base = overlay(spec, base, dyn[i].record)
				used[i] = true
			}
		}
		out = append(out, base)
	}
	for i, d := range dyn {
		if used[i] {
			continue
		}
		if spec.Complete != nil && !spec.Complete(d.record) {
			continue
		}
		out = append(out, d.record)
	}
	return out
}

func overlay[T any](spec Spec[T], base, dyn T) T {
	if spec.Overlay == nil {
		return dyn
	}
	return spec.Overlay(base, dyn)
}

// Prefer returns dyn when it is non-blank, else base.
func Prefer(dyn, base string) string {
	return cms.FirstNonEmpty(dyn, base)
}

// PreferList returns a copy of dyn when it has at least one element, else a copy of base.
// Lists are replaced whole, never merged element by element.
func PreferList[E any](dyn, base []E) []E {
	src := base
	if len(dyn) > 0 {
		src = dyn
	}
	if src == nil {
		return nil
	}
	return append([]E(nil), src...)
}
