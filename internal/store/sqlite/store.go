// Package sqlite provides a SQLite-backed game repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/store"
	"github.com/aaronzipp/twenty-questions/internal/store/sqlite/migrations"
)

// Store persists the catalog and player statuses in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ store.Repository = (*Store)(nil)

// Open opens a SQLite store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Seed upserts the catalog. Existing rows with the same IDs are overwritten;
// rows not mentioned are left alone.
func (s *Store) Seed(ctx context.Context, solutions []models.Solution, questions []models.Question, features models.FeatureTable) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range questions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, message) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET message = excluded.message`,
			int64(q.ID), q.Text,
		); err != nil {
			return fmt.Errorf("seed question %d: %w", q.ID, err)
		}
	}
	for _, sol := range solutions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO solutions (id, name) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
			int64(sol.ID), sol.Name,
		); err != nil {
			return fmt.Errorf("seed solution %d: %w", sol.ID, err)
		}
	}
	for q, row := range features {
		for sol, v := range row {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO features (question_id, solution_id, value) VALUES (?, ?, ?)
				 ON CONFLICT(question_id, solution_id) DO UPDATE SET value = excluded.value`,
				int64(q), int64(sol), v,
			); err != nil {
				return fmt.Errorf("seed feature (%d, %d): %w", q, sol, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Solutions returns all solutions ordered by ID.
func (s *Store) Solutions(ctx context.Context) ([]models.Solution, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name FROM solutions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	defer rows.Close()

	var out []models.Solution
	for rows.Next() {
		var sol models.Solution
		if err := rows.Scan(&sol.ID, &sol.Name); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		out = append(out, sol)
	}
	return out, rows.Err()
}

// Questions returns all questions ordered by ID.
func (s *Store) Questions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, message FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// QuestionCount returns the number of questions.
func (s *Store) QuestionCount(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// FeatureValue returns one feature, 0 when absent.
func (s *Store) FeatureValue(ctx context.Context, q models.QuestionID, sol models.SolutionID) (float64, error) {
	var v float64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM features WHERE question_id = ? AND solution_id = ?`,
		int64(q), int64(sol),
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get feature (%d, %d): %w", q, sol, err)
	}
	return v, nil
}

// Features loads every feature into a table.
func (s *Store) Features(ctx context.Context) (models.FeatureTable, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT question_id, solution_id, value FROM features`)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	table := models.FeatureTable{}
	for rows.Next() {
		var (
			q   models.QuestionID
			sol models.SolutionID
			v   float64
		)
		if err := rows.Scan(&q, &sol, &v); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		table.Set(q, sol, v)
	}
	return table, rows.Err()
}

// PlayerStatus loads a player's status, inserting a pending one on first contact.
func (s *Store) PlayerStatus(ctx context.Context, playerID string) (*models.PlayerStatus, error) {
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_statuses (player_id, status, updated_at) VALUES (?, ?, ?)`,
		playerID, string(models.PhasePending), toMillis(time.Now()),
	); err != nil {
		return nil, fmt.Errorf("create status for %s: %w", playerID, err)
	}

	var (
		rawPhase   string
		progressID sql.NullString
	)
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT status, progress_id FROM user_statuses WHERE player_id = ?`, playerID,
	).Scan(&rawPhase, &progressID); err != nil {
		return nil, fmt.Errorf("get status for %s: %w", playerID, err)
	}
	phase, err := models.ParsePhase(rawPhase)
	if err != nil {
		return nil, fmt.Errorf("status for %s: %w", playerID, err)
	}

	status := &models.PlayerStatus{PlayerID: playerID, Phase: phase}
	if progressID.Valid {
		progress, err := s.loadProgress(ctx, progressID.String)
		if err != nil {
			return nil, err
		}
		status.Progress = progress
	}
	return status, nil
}

func (s *Store) loadProgress(ctx context.Context, id string) (*models.Progress, error) {
	p := &models.Progress{ID: id}
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT latest_question_id, latest_guess_id FROM progresses WHERE id = ?`, id,
	).Scan(&p.LatestQuestion, &p.LatestGuess)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("progress %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get progress %s: %w", id, err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT question_id, value FROM answers WHERE progress_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list answers of %s: %w", id, err)
	}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.QuestionID, &a.Value); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		p.Answers = append(p.Answers, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.sqlDB.QueryContext(ctx,
		`SELECT solution_id FROM progress_candidates WHERE progress_id = ? ORDER BY solution_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list candidates of %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var sol models.SolutionID
		if err := rows.Scan(&sol); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		p.Candidates = append(p.Candidates, sol)
	}
	return p, rows.Err()
}

// AppendAnswer stages one answer on progress. It is written by the next Persist,
// in the same transaction as the rest of the progress.
func (s *Store) AppendAnswer(ctx context.Context, progress *models.Progress, q models.QuestionID, value float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if progress == nil {
		return store.ErrNoProgress
	}
	if progress.Answered(q) {
		return fmt.Errorf("question %d: %w", q, store.ErrDuplicateAnswer)
	}
	progress.Answers = append(progress.Answers, models.Answer{QuestionID: q, Value: value})
	return nil
}

// Persist writes the phase, progress, candidates and staged answers of a
// player in one transaction.
// A progress the player no longer references is deleted with its answers.
func (s *Store) Persist(ctx context.Context, status *models.PlayerStatus) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin persist: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prevID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT progress_id FROM user_statuses WHERE player_id = ?`, status.PlayerID,
	).Scan(&prevID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("get previous progress: %w", err)
	}

	var progressID sql.NullString
	if p := status.Progress; p != nil {
		progressID = sql.NullString{String: p.ID, Valid: true}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO progresses (id, latest_question_id, latest_guess_id, created_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   latest_question_id = excluded.latest_question_id,
			   latest_guess_id = excluded.latest_guess_id`,
			p.ID, int64(p.LatestQuestion), int64(p.LatestGuess), toMillis(time.Now()),
		); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM progress_candidates WHERE progress_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clear candidates: %w", err)
		}
		for _, sol := range p.Candidates {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO progress_candidates (progress_id, solution_id) VALUES (?, ?)`,
				p.ID, int64(sol),
			); err != nil {
				return fmt.Errorf("save candidate %d: %w", sol, err)
			}
		}
		// answers only ever grow within a progress; rows already stored are kept
		for _, a := range p.Answers {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO answers (progress_id, question_id, value) VALUES (?, ?, ?)
				 ON CONFLICT(progress_id, question_id) DO NOTHING`,
				p.ID, int64(a.QuestionID), a.Value,
			); err != nil {
				return fmt.Errorf("save answer %d: %w", a.QuestionID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_statuses (player_id, status, progress_id, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET
		   status = excluded.status,
		   progress_id = excluded.progress_id,
		   updated_at = excluded.updated_at`,
		status.PlayerID, string(status.Phase), progressID, toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("save status: %w", err)
	}

	if prevID.Valid && (!progressID.Valid || prevID.String != progressID.String) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM progresses WHERE id = ?`, prevID.String); err != nil {
			return fmt.Errorf("delete progress %s: %w", prevID.String, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit persist: %w", err)
	}
	return nil
}

// ResetProgress discards the player's game and sets them back to pending.
func (s *Store) ResetProgress(ctx context.Context, status *models.PlayerStatus) error {
	status.Progress = nil
	status.Phase = models.PhasePending
	return s.Persist(ctx, status)
}

// ActiveGames counts stored games in progress.
func (s *Store) ActiveGames(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM progresses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count progresses: %w", err)
	}
	return n, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}
