// Package history persists one row per analysis run plus per-country
// snapshots, so political and focus trends survive across saves.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sitrep/internal/log"
	"sitrep/internal/save"
)

// Session is one recorded analysis run.
type Session struct {
	ID              string
	SavePath        string
	Player          string
	GameDate        string
	TotalCountries  int
	ActiveCountries int
	EventCount      int
	CreatedAt       time.Time
}

// Snapshot is the per-country state captured for one session.
type Snapshot struct {
	SessionID        string
	Tag              string
	Stability        float64
	WarSupport       float64
	RulingParty      string
	PoliticalPower   float64
	CurrentFocus     string
	FocusProgress    float64
	CompletedFocuses int
}

// TrendPoint is one country's state at one recorded session, oldest
// first when returned from Trend.
type TrendPoint struct {
	SessionID        string
	GameDate         string
	Stability        float64
	WarSupport       float64
	PoliticalPower   float64
	CompletedFocuses int
}

// Store is the SQLite-backed history database.
type Store struct {
	db   *sql.DB
	path string

	insertSessionStmt  *sql.Stmt
	insertSnapshotStmt *sql.Stmt
}

// Open opens or creates the history database at path and brings its
// schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	if err := s.validateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid history schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare history statements: %w", err)
	}

	log.Debug("history database open", "path", path)
	return s, nil
}

func (s *Store) prepareStatements() error {
	var err error
	s.insertSessionStmt, err = s.db.Prepare(`
		INSERT INTO sessions (id, save_path, player, game_date,
			total_countries, active_countries, event_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	s.insertSnapshotStmt, err = s.db.Prepare(`
		INSERT INTO snapshots (session_id, tag, stability, war_support,
			ruling_party, political_power, current_focus, focus_progress,
			completed_focuses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// Close releases the prepared statements and the connection.
func (s *Store) Close() error {
	if s.insertSessionStmt != nil {
		s.insertSessionStmt.Close()
	}
	if s.insertSnapshotStmt != nil {
		s.insertSnapshotStmt.Close()
	}
	return s.db.Close()
}

// validateSchema checks that the sessions table carries the columns the
// queries depend on. A database created by something else fails here
// rather than at first query.
func (s *Store) validateSchema() error {
	rows, err := s.db.Query(`
		SELECT name FROM pragma_table_info('sessions')
		WHERE name IN ('id', 'save_path', 'player', 'game_date', 'created_at')`)
	if err != nil {
		return err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if count < 5 {
		return fmt.Errorf("sessions table is missing expected columns (found %d of 5)", count)
	}
	return nil
}

// Record stores one analysis run: a session row plus one snapshot per
// active country, atomically. It returns the new session ID.
func (s *Store) Record(savePath string, resolved *save.Save, active []save.Country) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	sessionID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.Stmt(s.insertSessionStmt).Exec(
		sessionID, savePath, resolved.Player, resolved.Date,
		len(resolved.Countries), len(active), len(resolved.Events), createdAt,
	); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	snapshotStmt := tx.Stmt(s.insertSnapshotStmt)
	for i := range active {
		snap := snapshotFrom(&active[i])
		if _, err := snapshotStmt.Exec(
			sessionID, snap.Tag, snap.Stability, snap.WarSupport,
			snap.RulingParty, snap.PoliticalPower, snap.CurrentFocus,
			snap.FocusProgress, snap.CompletedFocuses,
		); err != nil {
			return "", fmt.Errorf("insert snapshot for %s: %w", snap.Tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit history transaction: %w", err)
	}

	log.Info("analysis run recorded",
		"session", sessionID,
		"save", savePath,
		"date", resolved.Date,
		"snapshots", len(active))
	return sessionID, nil
}

// snapshotFrom flattens a resolved country into snapshot columns.
func snapshotFrom(c *save.Country) Snapshot {
	snap := Snapshot{
		Tag:         c.Tag,
		Stability:   c.Stability,
		WarSupport:  c.WarSupport,
		RulingParty: c.RulingParty(),
	}
	if c.Politics != nil && c.Politics.PoliticalPower != nil {
		snap.PoliticalPower = *c.Politics.PoliticalPower
	}
	if c.Focus != nil {
		if c.Focus.Current != nil {
			snap.CurrentFocus = *c.Focus.Current
		}
		if c.Focus.Progress != nil {
			snap.FocusProgress = *c.Focus.Progress
		}
		snap.CompletedFocuses = len(c.Focus.Completed)
	}
	return snap
}

// Sessions returns the newest recorded sessions, up to limit.
func (s *Store) Sessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(`
		SELECT id, save_path, player, game_date, total_countries,
			active_countries, event_count, created_at
		FROM sessions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt string
		if err := rows.Scan(&sess.ID, &sess.SavePath, &sess.Player, &sess.GameDate,
			&sess.TotalCountries, &sess.ActiveCountries, &sess.EventCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Snapshots returns every country snapshot for one session, by tag.
func (s *Store) Snapshots(sessionID string) ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT session_id, tag, stability, war_support, ruling_party,
			political_power, current_focus, focus_progress, completed_focuses
		FROM snapshots
		WHERE session_id = ?
		ORDER BY tag`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.SessionID, &snap.Tag, &snap.Stability, &snap.WarSupport,
			&snap.RulingParty, &snap.PoliticalPower, &snap.CurrentFocus,
			&snap.FocusProgress, &snap.CompletedFocuses); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Trend returns one country's recorded states oldest first, up to limit
// points.
func (s *Store) Trend(tag string, limit int) ([]TrendPoint, error) {
	rows, err := s.db.Query(`
		SELECT sn.session_id, se.game_date, sn.stability, sn.war_support,
			sn.political_power, sn.completed_focuses
		FROM snapshots sn
		JOIN sessions se ON se.id = sn.session_id
		WHERE sn.tag = ?
		ORDER BY se.created_at ASC, se.rowid ASC
		LIMIT ?`, tag, limit)
	if err != nil {
		return nil, fmt.Errorf("query trend for %s: %w", tag, err)
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.SessionID, &p.GameDate, &p.Stability, &p.WarSupport,
			&p.PoliticalPower, &p.CompletedFocuses); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
