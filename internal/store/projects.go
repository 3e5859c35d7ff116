package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

const projectColumns = `id, topic, aspect_ratio, status, script_json, voiceover_path,
    timeline_json, output_json, error_message, created_at, updated_at`

func (s *sqliteStore) Create(ctx context.Context, p *models.Project) error {
	if p == nil || p.ID == "" {
		return errors.New("create project: missing id")
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	row, err := encodeProject(p)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Topic, p.AspectRatio, string(p.Status), row.script, row.voiceover,
		row.timeline, row.output, row.errorMessage, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert project %s: %w", p.ID, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return p, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Update(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC()
	row, err := encodeProject(p)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx,
		`UPDATE projects SET topic = ?, aspect_ratio = ?, status = ?, script_json = ?, voiceover_path = ?,
            timeline_json = ?, output_json = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		p.Topic, p.AspectRatio, string(p.Status), row.script, row.voiceover,
		row.timeline, row.output, row.errorMessage, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return nil
}

func (s *sqliteStore) TransitionStatus(ctx context.Context, id string, from []models.Status, to models.Status) (bool, error) {
	if len(from) == 0 {
		return false, errors.New("transition status: no source states")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(from)), ", ")
	args := []any{string(to), formatTime(time.Now().UTC()), id}
	for _, st := range from {
		args = append(args, string(st))
	}

	res, err := s.exec(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ? AND status IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return false, fmt.Errorf("transition project %s to %s: %w", id, to, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("transition project %s: %w", id, err)
	}
	if n > 0 {
		return true, nil
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects WHERE id = ?`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check project %s: %w", id, err)
	}
	if exists == 0 {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return false, nil
}

type encodedProject struct {
	script       string
	voiceover    sql.NullString
	timeline     sql.NullString
	output       sql.NullString
	errorMessage sql.NullString
}

func encodeProject(p *models.Project) (encodedProject, error) {
	var row encodedProject

	script := p.Script
	if script == nil {
		script = []models.ScriptScene{}
	}
	data, err := json.Marshal(script)
	if err != nil {
		return row, fmt.Errorf("encode script: %w", err)
	}
	row.script = string(data)

	if p.Timeline != nil {
		data, err := json.Marshal(p.Timeline)
		if err != nil {
			return row, fmt.Errorf("encode timeline: %w", err)
		}
		row.timeline = sql.NullString{String: string(data), Valid: true}
	}
	if p.Output != nil {
		data, err := json.Marshal(p.Output)
		if err != nil {
			return row, fmt.Errorf("encode output: %w", err)
		}
		row.output = sql.NullString{String: string(data), Valid: true}
	}
	row.voiceover = nullable(p.VoiceoverPath)
	row.errorMessage = nullable(p.ErrorMessage)
	return row, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (*models.Project, error) {
	var (
		p                                         models.Project
		status, script, created, updated          string
		voiceover, timeline, output, errorMessage sql.NullString
	)
	if err := sc.Scan(&p.ID, &p.Topic, &p.AspectRatio, &status, &script, &voiceover,
		&timeline, &output, &errorMessage, &created, &updated); err != nil {
		return nil, err
	}
	p.Status = models.Status(status)
	p.VoiceoverPath = voiceover.String
	p.ErrorMessage = errorMessage.String

	if err := json.Unmarshal([]byte(script), &p.Script); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if timeline.Valid && timeline.String != "" {
		p.Timeline = &models.Timeline{}
		if err := json.Unmarshal([]byte(timeline.String), p.Timeline); err != nil {
			return nil, fmt.Errorf("decode timeline: %w", err)
		}
	}
	if output.Valid && output.String != "" {
		p.Output = &models.Output{}
		if err := json.Unmarshal([]byte(output.String), p.Output); err != nil {
			return nil, fmt.Errorf("decode output: %w", err)
		}
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
