// Package timeline plans, windows and navigates the chronological archive timeline.
//
// The pipeline is items -> FilterState -> rows -> (AnchorIndex, Virtualizer) ->
// visible rows -> measured sizes -> active anchor -> Location hash. Every stage is a
// synchronous derivation of explicit inputs; nothing here blocks or spawns goroutines.
package timeline

import (
	"strings"
	"time"
)

// ItemType classifies an archive record.
type ItemType string

const (
	TypeBook             ItemType = "book"
	TypeNewspaperArticle ItemType = "newspaper_article"
	TypeTVEpisode        ItemType = "tv_episode"
	TypeMagazineIssue    ItemType = "magazine_issue"
	TypeEvent            ItemType = "event"
	TypeRadio            ItemType = "radio"
	TypeDocumentary      ItemType = "documentary"
	TypeArticle          ItemType = "article"
	TypeOther            ItemType = "other"

	// TypeAll disables type filtering in a FilterState.
	TypeAll ItemType = "all"
)

// ItemTypes lists the concrete item types in toolbar order.
var ItemTypes = []ItemType{
	TypeBook,
	TypeNewspaperArticle,
	TypeTVEpisode,
	TypeMagazineIssue,
	TypeEvent,
	TypeRadio,
	TypeDocumentary,
	TypeArticle,
	TypeOther,
}

var itemTypeLabels = map[ItemType]string{
	TypeBook:             "Book",
	TypeNewspaperArticle: "Newspaper",
	TypeTVEpisode:        "TV",
	TypeMagazineIssue:    "Magazine",
	TypeEvent:            "Event",
	TypeRadio:            "Radio",
	TypeDocumentary:      "Documentary",
	TypeArticle:          "Article",
	TypeOther:            "Other",
	TypeAll:              "All",
}

// ParseItemType resolves a raw type name. "all" is accepted as the filter sentinel.
func ParseItemType(raw string) (ItemType, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "-", "_")
	if raw == string(TypeAll) {
		return TypeAll, true
	}
	for _, t := range ItemTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// Label is the short display name used on chips and card badges.
func (t ItemType) Label() string {
	if label, ok := itemTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Item is one dated archive record. Items arrive pre-validated and sorted by
// (Decade, Date); AnchorID is unique across the whole dataset.
type Item struct {
	ID           string
	Type         ItemType
	Title        string
	Date         time.Time
	Decade       int
	CreatorLabel string
	Summary      string
	Tags         []string
	Thumbnail    string
	AnchorID     string
	Links        []Link
}

// DecadeOf returns floor(year/10)*10.
func DecadeOf(year int) int {
	if year < 0 && year%10 != 0 {
		return (year/10 - 1) * 10
	}
	return (year / 10) * 10
}
