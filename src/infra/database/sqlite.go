package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/contre95/soulsync/src/music"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteCatalog is a SQLite-backed catalog source.
type SqliteCatalog struct {
	db *sql.DB
}

// NewSqliteCatalog opens (or creates) a catalog database at path.
func NewSqliteCatalog(path string) (*SqliteCatalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteCatalog{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			genre TEXT,
			path TEXT NOT NULL UNIQUE,
			size INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlists (
			name TEXT PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			playlist_name TEXT,
			track_id TEXT,
			position INTEGER,
			PRIMARY KEY (playlist_name, track_id),
			FOREIGN KEY (playlist_name) REFERENCES playlists(name),
			FOREIGN KEY (track_id) REFERENCES tracks(id)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist ON playlist_tracks(playlist_name);
	`)
	return err
}

// LoadCatalog reads the full catalog snapshot from the database.
func (d *SqliteCatalog) LoadCatalog() (*music.Catalog, error) {
	rows, err := d.db.Query(`SELECT id, title, artist, album, genre, path, size FROM tracks`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*music.Track
	for rows.Next() {
		track := &music.Track{}
		if err := rows.Scan(&track.ID, &track.Title, &track.Artist, &track.Album, &track.Genre, &track.Path, &track.Size); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	playlists, err := d.loadPlaylists()
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded catalog from database", "tracks", len(tracks), "playlists", len(playlists))
	return music.NewCatalog(tracks, playlists)
}

func (d *SqliteCatalog) loadPlaylists() ([]*music.Playlist, error) {
	rows, err := d.db.Query(`
		SELECT p.name, pt.track_id
		FROM playlists p
		LEFT JOIN playlist_tracks pt ON pt.playlist_name = p.name
		ORDER BY p.name, pt.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*music.Playlist
	var current *music.Playlist
	for rows.Next() {
		var name string
		var trackID sql.NullString
		if err := rows.Scan(&name, &trackID); err != nil {
			return nil, fmt.Errorf("failed to scan playlist row: %w", err)
		}
		if current == nil || current.Name != name {
			current = &music.Playlist{Name: name}
			playlists = append(playlists, current)
		}
		if trackID.Valid {
			current.TrackIDs = append(current.TrackIDs, trackID.String)
		}
	}
	return playlists, rows.Err()
}

// SaveCatalog replaces the stored snapshot with the given catalog.
func (d *SqliteCatalog) SaveCatalog(ctx context.Context, catalog *music.Catalog) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"playlist_tracks", "playlists", "tracks"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, track := range catalog.Tracks() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tracks (id, title, artist, album, genre, path, size)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, track.ID, track.Title, track.Artist, track.Album, track.Genre, track.Path, track.Size)
		if err != nil {
			return fmt.Errorf("failed to insert track %s: %w", track.ID, err)
		}
	}

	for _, playlist := range catalog.Playlists() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO playlists (name) VALUES (?)`, playlist.Name); err != nil {
			return fmt.Errorf("failed to insert playlist %s: %w", playlist.Name, err)
		}
		for position, trackID := range playlist.TrackIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO playlist_tracks (playlist_name, track_id, position)
				VALUES (?, ?, ?)
			`, playlist.Name, trackID, position)
			if err != nil {
				return fmt.Errorf("failed to insert playlist member: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (d *SqliteCatalog) Close() error {
	return d.db.Close()
}
