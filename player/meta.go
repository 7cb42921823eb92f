package player

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mediactl/mediactl/native"
	"github.com/samber/lo"
)

// MediaMeta is a copy of every metadata field of one media.
type MediaMeta struct {
	Locator     string `json:"locator"`
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
	Album       string `json:"album,omitempty"`
	TrackNumber string `json:"track_number,omitempty"`
	Description string `json:"description,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Date        string `json:"date,omitempty"`
	Setting     string `json:"setting,omitempty"`
	URL         string `json:"url,omitempty"`
	Language    string `json:"language,omitempty"`
	NowPlaying  string `json:"now_playing,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	EncodedBy   string `json:"encoded_by,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
	TrackID     string `json:"track_id,omitempty"`
}

func (m *MediaMeta) field(f native.Meta) *string {
	switch f {
	case native.MetaTitle:
		return &m.Title
	case native.MetaArtist:
		return &m.Artist
	case native.MetaGenre:
		return &m.Genre
	case native.MetaCopyright:
		return &m.Copyright
	case native.MetaAlbum:
		return &m.Album
	case native.MetaTrackNumber:
		return &m.TrackNumber
	case native.MetaDescription:
		return &m.Description
	case native.MetaRating:
		return &m.Rating
	case native.MetaDate:
		return &m.Date
	case native.MetaSetting:
		return &m.Setting
	case native.MetaURL:
		return &m.URL
	case native.MetaLanguage:
		return &m.Language
	case native.MetaNowPlaying:
		return &m.NowPlaying
	case native.MetaPublisher:
		return &m.Publisher
	case native.MetaEncodedBy:
		return &m.EncodedBy
	case native.MetaArtworkURL:
		return &m.ArtworkURL
	case native.MetaTrackID:
		return &m.TrackID
	default:
		return nil
	}
}

func (m *MediaMeta) set(f native.Meta, v string) {
	if p := m.field(f); p != nil {
		*p = v
	}
}

// Get returns the value of field f.
func (m MediaMeta) Get(f native.Meta) string {
	if p := m.field(f); p != nil {
		return *p
	}
	return ""
}

// Present lists the fields that have a value, in enumeration order.
func (m MediaMeta) Present() []native.Meta {
	return lo.Filter(native.MetaFields(), func(f native.Meta, _ int) bool {
		return m.Get(f) != ""
	})
}

// MatchFields finds the metadata fields whose names fuzzily match query, best match first.
func MatchFields(query string) []native.Meta {
	names := lo.Map(native.MetaFields(), func(f native.Meta, _ int) string {
		return f.String()
	})

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) native.Meta {
		return native.Meta(r.OriginalIndex)
	})
}
