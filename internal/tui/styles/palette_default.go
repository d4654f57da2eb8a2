package styles

import "github.com/tOgg1/chrono/internal/timeline"

// DefaultTheme is the baseline dark palette.
var DefaultTheme = Theme{
	Name: "default",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Border:     "240",
		Error:      "203",
	},
	Chrome: ChromeColors{
		Header:     "111",
		Footer:     "110",
		Toolbar:    "236",
		ChipActive: "75",
		Spine:      "238",
	},
	Card: CardColors{
		Border:       "240",
		ActiveBorder: "75",
		Title:        "255",
		Date:         "180",
		Tag:          "109",
		DecadeHeader: "215",
	},
	Types: map[timeline.ItemType]string{
		timeline.TypeBook:             "141",
		timeline.TypeNewspaperArticle: "180",
		timeline.TypeTVEpisode:        "81",
		timeline.TypeMagazineIssue:    "212",
		timeline.TypeEvent:            "203",
		timeline.TypeRadio:            "114",
		timeline.TypeDocumentary:      "221",
		timeline.TypeArticle:          "152",
		timeline.TypeOther:            "245",
	},
	Markdown: "dark",
}
