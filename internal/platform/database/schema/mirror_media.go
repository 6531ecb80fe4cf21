package schema

// MirrorMediaTable represents the 'mirror.media' table
type MirrorMediaTable struct {
	Table     string
	ID        string
	EntryID   string
	URL       string
	Role      string
	CreatedAt string
}

// MirrorMedia is the schema definition for mirror.media
var MirrorMedia = MirrorMediaTable{
	Table:     "mirror.media",
	ID:        "id",
	EntryID:   "entryid",
	URL:       "url",
	Role:      "role",
	CreatedAt: "createdat",
}

func (t MirrorMediaTable) Columns() []string {
	return []string{t.ID, t.EntryID, t.URL, t.Role, t.CreatedAt}
}
