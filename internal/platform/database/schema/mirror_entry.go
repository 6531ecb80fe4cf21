package schema

// MirrorEntryTable represents the 'mirror.entry' table
type MirrorEntryTable struct {
	Table      string
	ID         string
	ArtworkID  string
	Title      string
	ArtistID   string
	ArtistName string
	Status     string
	CreatedAt  string
	TrashedAt  string
}

// MirrorEntry is the schema definition for mirror.entry
var MirrorEntry = MirrorEntryTable{
	Table:      "mirror.entry",
	ID:         "id",
	ArtworkID:  "artworkid",
	Title:      "title",
	ArtistID:   "artistid",
	ArtistName: "artistname",
	Status:     "status",
	CreatedAt:  "createdat",
	TrashedAt:  "trashedat",
}

func (t MirrorEntryTable) Columns() []string {
	return []string{t.ID, t.ArtworkID, t.Title, t.ArtistID, t.ArtistName, t.Status, t.CreatedAt, t.TrashedAt}
}
