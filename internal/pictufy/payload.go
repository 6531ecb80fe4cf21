package pictufy

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/totmarc/pictufy-mirror/pkg/convert"
)

// The remote catalog is loose about typing: ids arrive as strings in one
// listing and numbers in the next, titles may be wrapped in localized maps,
// and flags come as bools, 0/1 integers, or strings. The Flex* types absorb
// that at the decode boundary so every record field downstream has exactly
// one shape.

// Status mirrors the status block attached to every catalog response.
//
// ReturnedItems is a pointer because the upstream sometimes omits the block
// entirely; [Response.Returned] falls back to the item count in that case.
type Status struct {
	ReturnedItems *int `json:"returned_items"`
	Code          int  `json:"code"`
}

// Response is the uniform decoded payload of a catalog call.
//
// Items stay raw at this level; each domain operation decodes them into its
// record type. ErrorMessage carries the upstream's in-band error member and
// is converted to a typed error by the client before a Response ever reaches
// a caller.
type Response struct {
	Items        []json.RawMessage `json:"items"`
	Status       Status            `json:"status"`
	ErrorMessage string            `json:"error"`
}

// Returned reports the item count the upstream claims for this page,
// falling back to the actual item count when the status block is absent.
func (r *Response) Returned() int {
	if r.Status.ReturnedItems != nil {
		return *r.Status.ReturnedItems
	}
	return len(r.Items)
}

// # Flexible Scalars

// FlexString decodes a JSON string, number, or bool into a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*f = FlexString(convert.AnyToString(value))
	return nil
}

// FlexInt decodes a JSON number or numeric string into an int.
// Anything non-numeric decodes to 0.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*f = FlexInt(convert.AnyToInt(value))
	return nil
}

// FlexText decodes a JSON string, or the first value of a JSON object or
// array (localized title maps), into a plain string.
type FlexText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexText(s)
	case '{':
		value, err := firstObjectValue(trimmed)
		if err != nil {
			return err
		}
		*f = FlexText(convert.AnyToString(value))
	case '[':
		var values []any
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		if len(values) > 0 {
			*f = FlexText(convert.AnyToString(values[0]))
		}
	default:
		var value any
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*f = FlexText(convert.AnyToString(value))
	}

	return nil
}

// KeywordBucket decodes the upstream keyword field into its comma-joined
// source string. The field arrives either as that string directly, or as an
// object/array whose first value is the string. Splitting, trimming, and
// capping is the normalizer's job.
type KeywordBucket string

// UnmarshalJSON implements json.Unmarshaler.
func (k *KeywordBucket) UnmarshalJSON(data []byte) error {
	var text FlexText
	if err := text.UnmarshalJSON(data); err != nil {
		return err
	}
	*k = KeywordBucket(text)
	return nil
}

// # Color Flags

// ColorFlag is one named flag in an artwork's color map, in document order.
type ColorFlag struct {
	Name    string
	Enabled bool
}

// ColorFlags preserves the document order of the upstream color-flag map so
// the normalizer can pick the first enabled entry deterministically.
type ColorFlags []ColorFlag

// UnmarshalJSON implements json.Unmarshaler.
func (c *ColorFlags) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		// Non-object color fields carry no usable flags.
		*c = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))

	// Consume the opening brace.
	if _, err := decoder.Token(); err != nil {
		return err
	}

	var flags ColorFlags
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, _ := keyToken.(string)

		var value any
		if err := decoder.Decode(&value); err != nil {
			return err
		}

		flags = append(flags, ColorFlag{Name: key, Enabled: truthy(value)})
	}

	*c = flags
	return nil
}

// firstObjectValue returns the first value of a JSON object in document order.
func firstObjectValue(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	// Consume the opening brace.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	if !decoder.More() {
		return nil, nil
	}

	// Consume the first key.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	return value, nil
}

// truthy applies loose truthiness to a decoded JSON value: nonzero numbers,
// non-empty non-"0" strings, and true are enabled.
func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		s := strings.TrimSpace(v)
		return s != "" && s != "0" && !strings.EqualFold(s, "false")
	default:
		return false
	}
}

// # Wire Records

// CollectionGroup is one nested group in the collections listing; the
// flattened display list is built from every group's collections.
type CollectionGroup struct {
	Name        string             `json:"name"`
	Collections []CollectionRecord `json:"collections"`
}

// CollectionRecord is the wire shape of a single collection.
type CollectionRecord struct {
	ID          FlexString `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Thumb       string     `json:"thumb"`
	Cover       string     `json:"cover"`
	CoverSmall  string     `json:"cover_small"`
	CoverLarge  string     `json:"cover_large"`
	Artworks    *FlexInt   `json:"artworks"`
}

// ArtistRecord is the wire shape of a single artist.
type ArtistRecord struct {
	ArtistID       FlexInt `json:"artist_id"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Type           string  `json:"artist_type"`
	ProfilePicture string  `json:"profile_picture"`
	Image          string  `json:"image"`
	Artworks       FlexInt `json:"artworks"`
}

// ImageURLs is the wire shape of an artwork's image variant map.
type ImageURLs struct {
	ThumbSquare string `json:"img_thumb_square"`
	Thumb       string `json:"img_thumb"`
	Medium      string `json:"img_medium"`
	High        string `json:"img_high"`
}

// ArtworkRecord is the wire shape of a single artwork.
type ArtworkRecord struct {
	ID          FlexString    `json:"id"`
	Title       FlexText      `json:"title"`
	Artist      string        `json:"artist"`
	ArtistID    FlexInt       `json:"artist_id"`
	Category    string        `json:"category"`
	CategoryID  FlexString    `json:"category_id"`
	Keywords    KeywordBucket `json:"keywords"`
	Published   string        `json:"artwork_published"`
	ArtworkType string        `json:"artwork_type"`
	Geometry    string        `json:"geometry"`
	Color       ColorFlags    `json:"color"`
	URLs        ImageURLs     `json:"urls"`
	Image       string        `json:"image"`
	Width       FlexInt       `json:"width"`
	Height      FlexInt       `json:"height"`
}

// CategoryRecord is the wire shape of a single artwork category.
type CategoryRecord struct {
	CategoryID FlexString `json:"category_id"`
	Name       string     `json:"name"`
}

// ExpiredRecord is the wire shape of one expired-artworks feed item.
// Raw retains the full payload for downstream listeners.
type ExpiredRecord struct {
	ArtworkID FlexString      `json:"artwork_id"`
	Raw       json.RawMessage `json:"-"`
}

// # Typed Item Decoding

// DecodeCollectionGroups decodes the items of a collections response.
// Malformed entries are skipped rather than failing the whole page.
func DecodeCollectionGroups(items []json.RawMessage) []CollectionGroup {
	groups := make([]CollectionGroup, 0, len(items))
	for _, raw := range items {
		var group CollectionGroup
		if err := json.Unmarshal(raw, &group); err != nil {
			continue
		}
		groups = append(groups, group)
	}
	return groups
}

// DecodeArtists decodes the items of an artists response.
func DecodeArtists(items []json.RawMessage) []ArtistRecord {
	artists := make([]ArtistRecord, 0, len(items))
	for _, raw := range items {
		var artist ArtistRecord
		if err := json.Unmarshal(raw, &artist); err != nil {
			continue
		}
		artists = append(artists, artist)
	}
	return artists
}

// DecodeArtworks decodes the items of an artworks response.
func DecodeArtworks(items []json.RawMessage) []ArtworkRecord {
	artworks := make([]ArtworkRecord, 0, len(items))
	for _, raw := range items {
		var artwork ArtworkRecord
		if err := json.Unmarshal(raw, &artwork); err != nil {
			continue
		}
		artworks = append(artworks, artwork)
	}
	return artworks
}

// DecodeCategories decodes the items of a categories response.
func DecodeCategories(items []json.RawMessage) []CategoryRecord {
	categories := make([]CategoryRecord, 0, len(items))
	for _, raw := range items {
		var category CategoryRecord
		if err := json.Unmarshal(raw, &category); err != nil {
			continue
		}
		categories = append(categories, category)
	}
	return categories
}

// DecodeExpired decodes the items of an expired-artworks response, keeping
// the raw payload alongside each record.
func DecodeExpired(items []json.RawMessage) []ExpiredRecord {
	records := make([]ExpiredRecord, 0, len(items))
	for _, raw := range items {
		var record ExpiredRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			continue
		}
		record.Raw = raw
		records = append(records, record)
	}
	return records
}
