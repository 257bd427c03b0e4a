package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pierrec/lz4/v4"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// DB persists session snapshots and the question bank. State blobs are
// lz4-compressed JSON.
type DB struct {
	sql *sql.DB
}

// Open initializes the sqlite database, creating the schema on first boot
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		os.MkdirAll(dir, 0755)
	}

	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	sqlDB.Exec("PRAGMA journal_mode=WAL;")

	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		join_code TEXT,
		topic TEXT,
		mode TEXT,
		updated_at INTEGER,
		state_blob BLOB
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		topic TEXT,
		concept TEXT,
		question TEXT,
		options_json TEXT,
		correct_idx INTEGER,
		difficulty INTEGER DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic);
	`
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{sql: sqlDB}, nil
}

// Close closes the underlying database
func (d *DB) Close() error { return d.sql.Close() }

// SaveSession upserts a state snapshot
func (d *DB) SaveSession(snap *models.GameState) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", snap.ID, err)
	}
	_, err = d.sql.Exec(
		`INSERT OR REPLACE INTO sessions (id, join_code, topic, mode, updated_at, state_blob) VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.JoinCode, snap.Topic, snap.Mode, time.Now().Unix(), compressLZ4(raw),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", snap.ID, err)
	}
	return nil
}

// LoadSession retrieves a persisted snapshot by id
func (d *DB) LoadSession(id string) (*models.GameState, error) {
	var blob []byte
	err := d.sql.QueryRow(`SELECT state_blob FROM sessions WHERE id = ?`, id).Scan(&blob)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	raw, err := decompressLZ4(blob)
	if err != nil {
		return nil, fmt.Errorf("decompressing session %s: %w", id, err)
	}
	var snap models.GameState
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &snap, nil
}

// DeleteSession removes a persisted session
func (d *DB) DeleteSession(id string) error {
	_, err := d.sql.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// InsertQuestions seeds or extends the question bank
func (d *DB) InsertQuestions(topic string, questions []models.Question) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encoding options for %s: %w", q.ID, err)
		}
		qTopic := q.Topic
		if qTopic == "" {
			qTopic = topic
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO questions (id, topic, concept, question, options_json, correct_idx, difficulty) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			q.ID, qTopic, q.Concept, q.Text, string(options), q.Correct, q.Difficulty,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting question %s: %w", q.ID, err)
		}
	}
	return tx.Commit()
}

// LoadQuestionBank returns the bank for a topic; an empty topic loads
// everything. A missing bank is not an error: the provider degrades to its
// synthesis fallback.
func (d *DB) LoadQuestionBank(topic string) ([]models.Question, error) {
	query := `SELECT id, topic, concept, question, options_json, correct_idx, difficulty FROM questions`
	args := []any{}
	if topic != "" {
		query += ` WHERE topic = ?`
		args = append(args, topic)
	}
	rows, err := d.sql.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading question bank: %w", err)
	}
	defer rows.Close()

	var bank []models.Question
	for rows.Next() {
		var q models.Question
		var options string
		if err := rows.Scan(&q.ID, &q.Topic, &q.Concept, &q.Text, &options, &q.Correct, &q.Difficulty); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("decoding options for %s: %w", q.ID, err)
		}
		bank = append(bank, q)
	}
	return bank, rows.Err()
}

func compressLZ4(src []byte) []byte {
	buf := new(bytes.Buffer)
	zw := lz4.NewWriter(buf)
	zw.Write(src)
	zw.Close()
	return buf.Bytes()
}

func decompressLZ4(src []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))
	return io.ReadAll(zr)
}
