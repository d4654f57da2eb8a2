package archive

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tOgg1/chrono/internal/timeline"
)

var dateLayouts = []string{"2006-01-02", "2006-01", "2006", time.RFC3339}

var decadeAnchorPattern = regexp.MustCompile(`^decade-\d{4}$`)

// ParseDate accepts YYYY-MM-DD, YYYY-MM, YYYY or RFC 3339 timestamps. Partial
// dates resolve to the first day of the period.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// Slugify lowercases s and reduces it to [a-z0-9-].
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type pending struct {
	index  int
	rec    Record
	date   time.Time
	anchor string
}

// Normalize validates records and turns them into timeline items sorted by
// (decade, date, title, id). Invalid records are reported, not fatal. Anchors are
// unique, lowercase and never collide with decade header anchors.
func Normalize(records []Record) ([]timeline.Item, []Rejected) {
	var rejected []Rejected
	ready := make([]pending, 0, len(records))

	for i, rec := range records {
		rec.Title = strings.TrimSpace(rec.Title)
		rec.ID = strings.TrimSpace(rec.ID)
		if rec.Title == "" {
			rejected = append(rejected, Rejected{Index: i, ID: rec.ID, Reason: "missing title"})
			continue
		}
		date, err := ParseDate(rec.Date)
		if err != nil {
			rejected = append(rejected, Rejected{Index: i, ID: rec.ID, Title: rec.Title, Reason: err.Error()})
			continue
		}
		ready = append(ready, pending{index: i, rec: rec, date: date, anchor: baseAnchor(rec, date)})
	}

	sort.SliceStable(ready, func(a, b int) bool {
		pa, pb := ready[a], ready[b]
		da, db := timeline.DecadeOf(pa.date.Year()), timeline.DecadeOf(pb.date.Year())
		if da != db {
			return da < db
		}
		if !pa.date.Equal(pb.date) {
			return pa.date.Before(pb.date)
		}
		if pa.rec.Title != pb.rec.Title {
			return pa.rec.Title < pb.rec.Title
		}
		return sortID(pa) < sortID(pb)
	})

	seen := make(map[string]int, len(ready))
	items := make([]timeline.Item, 0, len(ready))
	for _, p := range ready {
		anchor := p.anchor
		if n := seen[anchor]; n > 0 {
			for {
				n++
				candidate := anchor + "-" + strconv.Itoa(n)
				if seen[candidate] == 0 {
					seen[anchor] = n
					anchor = candidate
					break
				}
			}
		}
		seen[anchor] = max(seen[anchor], 1)

		typ, ok := timeline.ParseItemType(p.rec.Type)
		if !ok || typ == timeline.TypeAll {
			typ = timeline.TypeOther
		}
		id := p.rec.ID
		if id == "" {
			id = anchor
		}
		items = append(items, timeline.Item{
			ID:           id,
			Type:         typ,
			Title:        p.rec.Title,
			Date:         p.date,
			Decade:       timeline.DecadeOf(p.date.Year()),
			CreatorLabel: strings.TrimSpace(p.rec.Creator),
			Summary:      strings.TrimSpace(p.rec.Summary),
			Tags:         cleanTags(p.rec.Tags),
			Thumbnail:    strings.TrimSpace(p.rec.Thumbnail),
			AnchorID:     anchor,
			Links:        cleanLinks(p.rec.Links),
		})
	}
	return items, rejected
}

func sortID(p pending) string {
	if p.rec.ID != "" {
		return p.rec.ID
	}
	return p.anchor
}

func baseAnchor(rec Record, date time.Time) string {
	anchor := Slugify(rec.Slug)
	if anchor == "" {
		year := strconv.Itoa(date.Year())
		if slug := Slugify(rec.Title); slug != "" {
			anchor = slug + "-" + year
		} else {
			anchor = "item-" + year
		}
	}
	if decadeAnchorPattern.MatchString(anchor) {
		anchor = "item-" + anchor
	}
	return anchor
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func cleanLinks(links []timeline.Link) []timeline.Link {
	out := make([]timeline.Link, 0, len(links))
	for _, l := range links {
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			continue
		}
		l.Label = strings.TrimSpace(l.Label)
		if l.Label == "" {
			l.Label = l.URL
		}
		out = append(out, l)
	}
	return out
}
