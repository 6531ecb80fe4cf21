// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

package mirror

import (
	stdctx "context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/database/schema"
	"github.com/totmarc/pictufy-mirror/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// # Schema Table Mapping
//   - mirror.entry: One row per mirrored artwork.
//   - mirror.media: Attachments owned by an entry.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres mirror repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a published entry and its media atomically.
func (repository *PostgresRepository) Create(context stdctx.Context, entry *Entry, media []Media) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_mirror_entry")
	}
	defer func() { _ = tx.Rollback(context) }()

	entryQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		schema.MirrorEntry.Table,
		schema.MirrorEntry.ArtworkID, schema.MirrorEntry.Title, schema.MirrorEntry.ArtistID,
		schema.MirrorEntry.ArtistName, schema.MirrorEntry.Status,
		schema.MirrorEntry.ID, schema.MirrorEntry.CreatedAt,
	)

	entry.Status = StatusPublished
	err = tx.QueryRow(context, entryQuery,
		entry.ArtworkID, entry.Title, entry.ArtistID, entry.ArtistName, entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_mirror_entry")
	}

	mediaQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		schema.MirrorMedia.Table,
		schema.MirrorMedia.EntryID, schema.MirrorMedia.URL, schema.MirrorMedia.Role,
		schema.MirrorMedia.ID, schema.MirrorMedia.CreatedAt,
	)

	for i := range media {
		media[i].EntryID = entry.ID
		err = tx.QueryRow(context, mediaQuery, media[i].EntryID, media[i].URL, media[i].Role).
			Scan(&media[i].ID, &media[i].CreatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_mirror_media")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_mirror_entry")
	}

	return nil
}

// FindByArtworkID loads the published entry for an upstream artwork id.
func (repository *PostgresRepository) FindByArtworkID(context stdctx.Context, artworkID string) (*Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.MirrorEntry.ID, schema.MirrorEntry.ArtworkID, schema.MirrorEntry.Title,
		schema.MirrorEntry.ArtistID, schema.MirrorEntry.ArtistName, schema.MirrorEntry.Status,
		schema.MirrorEntry.CreatedAt, schema.MirrorEntry.TrashedAt,
		schema.MirrorEntry.Table,
		schema.MirrorEntry.ArtworkID, schema.MirrorEntry.Status,
	)

	entry := &Entry{}
	err := repository.pool.QueryRow(context, query, artworkID, StatusPublished).Scan(
		&entry.ID,
		&entry.ArtworkID,
		&entry.Title,
		&entry.ArtistID,
		&entry.ArtistName,
		&entry.Status,
		&entry.CreatedAt,
		&entry.TrashedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "find_mirror_entry_by_artwork")
	}

	return entry, nil
}

// Trash marks an entry trashed and stamps the trash time.
func (repository *PostgresRepository) Trash(context stdctx.Context, entryID int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = NOW()
		WHERE %s = $2`,
		schema.MirrorEntry.Table,
		schema.MirrorEntry.Status, schema.MirrorEntry.TrashedAt,
		schema.MirrorEntry.ID,
	)

	tag, err := repository.pool.Exec(context, query, StatusTrashed, entryID)
	if err != nil {
		return dberr.Wrap(err, "trash_mirror_entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Mirror entry")
	}

	return nil
}

// DeleteMedia removes every media attachment of an entry.
func (repository *PostgresRepository) DeleteMedia(context stdctx.Context, entryID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.MirrorMedia.Table, schema.MirrorMedia.EntryID,
	)

	if _, err := repository.pool.Exec(context, query, entryID); err != nil {
		return dberr.Wrap(err, "delete_mirror_media")
	}

	return nil
}

// List returns published entries, newest first.
func (repository *PostgresRepository) List(context stdctx.Context, limit, offset int) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		schema.MirrorEntry.ID, schema.MirrorEntry.ArtworkID, schema.MirrorEntry.Title,
		schema.MirrorEntry.ArtistID, schema.MirrorEntry.ArtistName, schema.MirrorEntry.Status,
		schema.MirrorEntry.CreatedAt, schema.MirrorEntry.TrashedAt,
		schema.MirrorEntry.Table,
		schema.MirrorEntry.Status,
		schema.MirrorEntry.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, StatusPublished, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_mirror_entries")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.ID,
			&entry.ArtworkID,
			&entry.Title,
			&entry.ArtistID,
			&entry.ArtistName,
			&entry.Status,
			&entry.CreatedAt,
			&entry.TrashedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_mirror_entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_mirror_entries")
	}

	return entries, nil
}
