package styles

import "github.com/tOgg1/chrono/internal/timeline"

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
		Error:      "196",
	},
	Chrome: ChromeColors{
		Header:     "117",
		Footer:     "159",
		Toolbar:    "16",
		ChipActive: "51",
		Spine:      "250",
	},
	Card: CardColors{
		Border:       "250",
		ActiveBorder: "226",
		Title:        "231",
		Date:         "229",
		Tag:          "195",
		DecadeHeader: "226",
	},
	Types: map[timeline.ItemType]string{
		timeline.TypeBook:             "213",
		timeline.TypeNewspaperArticle: "229",
		timeline.TypeTVEpisode:        "87",
		timeline.TypeMagazineIssue:    "219",
		timeline.TypeEvent:            "196",
		timeline.TypeRadio:            "46",
		timeline.TypeDocumentary:      "226",
		timeline.TypeArticle:          "159",
		timeline.TypeOther:            "250",
	},
	Markdown: "dark",
}
