// Package sections regroups flat CMS section ids into nested records and overlays them
// onto hard-coded legacy defaults.
//
// A Pattern describes the id shapes of one repeating CMS block, for example
//
//	RULES_TAB_2_TITLE            group 2, field TITLE
//	RULES_TAB_2_ITEM_1_SUBTITLE  group 2, item 1, field SUBTITLE
//	ABOUT_STAT_LABEL_MEMBERS     group MEMBERS, field LABEL (FieldFirst layout)
//
// Patterns are plain data so new CMS blocks reuse the same merge algorithm.
package sections

import (
	"sort"
	"strconv"
	"strings"

	"motorsport.az/club-web/internal/cms"
)

// Layout selects where the group key sits relative to the field name.
type Layout int

const (
	// IndexFirst ids look like PREFIX_<index>_<FIELD> and PREFIX_<index>_ITEM_<sub>_<FIELD>.
	IndexFirst Layout = iota
	// FieldFirst ids look like PREFIX_<FIELD>_<suffix>; the suffix pairs fields together.
	FieldFirst
)

const defaultItemMarker = "ITEM"

// Pattern describes the id shapes of one repeating CMS block.
type Pattern struct {
	Prefix     string
	Layout     Layout
	Fields     []string
	ItemMarker string
	ItemFields []string
}

// Group is one regrouped block: its key as written in the ids, its own fields and its items
// ordered by sub-index.
type Group struct {
	Key    string
	Fields map[string]cms.Section
	Items  []Item
}

// Item is one sub-record of a group.
type Item struct {
	Key    string
	Fields map[string]cms.Section
}

// Text returns the display text of field, or "".
func (g Group) Text(field string) string { return g.Fields[strings.ToUpper(field)].Text() }

// Href returns the link target of field, or "".
func (g Group) Href(field string) string { return g.Fields[strings.ToUpper(field)].Href() }

// Text returns the display text of field, or "".
func (i Item) Text(field string) string { return i.Fields[strings.ToUpper(field)].Text() }

// Href returns the link target of field, or "".
func (i Item) Href(field string) string { return i.Fields[strings.ToUpper(field)].Href() }

type match struct {
	group string
	item  string // empty for group-level fields
	field string
}

func (p Pattern) prefix() string {
	return strings.ToUpper(strings.Trim(strings.TrimSpace(p.Prefix), "_")) + "_"
}

func (p Pattern) marker() string {
	m := strings.ToUpper(strings.Trim(strings.TrimSpace(p.ItemMarker), "_"))
	if m == "" {
		m = defaultItemMarker
	}
	return m + "_"
}

// classify matches one section id against the pattern.
func (p Pattern) classify(id string) (match, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	prefix := p.prefix()
	if len(prefix) < 2 || !strings.HasPrefix(id, prefix) {
		return match{}, false
	}
	rest := id[len(prefix):]

	if p.Layout == FieldFirst {
		field, suffix, ok := splitFieldFirst(rest, p.Fields)
		if !ok {
			return match{}, false
		}
		return match{group: suffix, field: field}, true
	}

	index, rest, ok := strings.Cut(rest, "_")
	if !ok || !isDigits(index) {
		return match{}, false
	}
	if len(p.ItemFields) > 0 && strings.HasPrefix(rest, p.marker()) {
		sub, field, ok := strings.Cut(rest[len(p.marker()):], "_")
		if ok && isDigits(sub) && containsField(p.ItemFields, field) {
			return match{group: index, item: sub, field: field}, true
		}
	}
	if containsField(p.Fields, rest) {
		return match{group: index, field: rest}, true
	}
	return match{}, false
}

// splitFieldFirst finds the longest declared field that prefixes rest and returns it with
// the remaining suffix.
func splitFieldFirst(rest string, fields []string) (string, string, bool) {
	best := ""
	for _, f := range fields {
		f = strings.ToUpper(f)
		if len(f) > len(best) && strings.HasPrefix(rest, f+"_") && len(rest) > len(f)+1 {
			best = f
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, rest[len(best)+1:], true
}

// Scan classifies every section once and returns the groups ordered by key: numeric keys
// ascending, then non-numeric keys in first-seen order. Items follow the same ordering.
// When a field appears more than once, the first non-blank occurrence wins.
func Scan(secs []cms.Section, p Pattern) []Group {
	type itemAcc struct {
		key    string
		seen   int
		fields map[string]cms.Section
	}
	type groupAcc struct {
		key    string
		seen   int
		fields map[string]cms.Section
		items  map[string]*itemAcc
	}

	groups := map[string]*groupAcc{}
	seen := 0
	for _, s := range secs {
		m, ok := p.classify(s.ID)
		if !ok {
			continue
		}
		g, ok := groups[m.group]
		if !ok {
			g = &groupAcc{key: m.group, seen: seen, fields: map[string]cms.Section{}, items: map[string]*itemAcc{}}
			groups[m.group] = g
		}
		seen++
		target := g.fields
		if m.item != "" {
			it, ok := g.items[m.item]
			if !ok {
				it = &itemAcc{key: m.item, seen: seen, fields: map[string]cms.Section{}}
				g.items[m.item] = it
			}
			target = it.fields
		}
		if prev, ok := target[m.field]; ok && !blank(prev) {
			continue
		}
		target[m.field] = s
	}

	keys := make([]orderedKey, 0, len(groups))
	for k, g := range groups {
		keys = append(keys, orderedKey{key: k, seen: g.seen})
	}
	sortKeys(keys)

	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		acc := groups[k.key]
		g := Group{Key: acc.key, Fields: acc.fields}
		itemKeys := make([]orderedKey, 0, len(acc.items))
		for ik, it := range acc.items {
			itemKeys = append(itemKeys, orderedKey{key: ik, seen: it.seen})
		}
		sortKeys(itemKeys)
		for _, ik := range itemKeys {
			g.Items = append(g.Items, Item{Key: ik.key, Fields: acc.items[ik.key].fields})
		}
		out = append(out, g)
	}
	return out
}

type orderedKey struct {
	key  string
	seen int
}

func sortKeys(keys []orderedKey) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i].key)
		b, bErr := strconv.Atoi(keys[j].key)
		switch {
		case aErr == nil && bErr == nil:
			if a != b {
				return a < b
			}
			return keys[i].seen < keys[j].seen
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return keys[i].seen < keys[j].seen
		}
	})
}

func blank(s cms.Section) bool {
	return cms.FirstNonEmpty(s.Value, s.Label, s.URL) == ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if strings.EqualFold(f, field) {
			return true
		}
	}
	return false
}
