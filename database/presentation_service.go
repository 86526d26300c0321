package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slidesmith/config"
	"slidesmith/deck"
)

// Presentation is a stored presentation record: the outline plus the
// companion chart dataset and the theme it renders with.
type Presentation struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Outline   []deck.OutlineItem `json:"outline"`
	Charts    []deck.ChartConfig `json:"charts"`
	Theme     config.Theme       `json:"theme"`
	CreatedAt int64              `json:"createdAt"`
	UpdatedAt int64              `json:"updatedAt"`
}

// outlineDocument is the JSON shape stored in the outline_data column.
type outlineDocument struct {
	Outline []deck.OutlineItem `json:"outline"`
	Charts  []deck.ChartConfig `json:"charts"`
}

// PresentationService provides CRUD over stored presentations.
type PresentationService struct {
	db *sql.DB
}

// NewPresentationService creates a new PresentationService instance
func NewPresentationService(db *sql.DB) *PresentationService {
	return &PresentationService{db: db}
}

// Save inserts or updates a presentation inside one transaction. A missing
// id gets a fresh uuid; timestamps are maintained here.
func (s *PresentationService) Save(p Presentation) (Presentation, error) {
	if s.db == nil {
		return Presentation{}, fmt.Errorf("database connection is nil")
	}
	if p.Title == "" {
		return Presentation{}, fmt.Errorf("title is required")
	}

	outlineData, err := json.Marshal(outlineDocument{Outline: p.Outline, Charts: p.Charts})
	if err != nil {
		return Presentation{}, fmt.Errorf("failed to serialize outline data: %w", err)
	}
	themeData, err := json.Marshal(p.Theme)
	if err != nil {
		return Presentation{}, fmt.Errorf("failed to serialize theme data: %w", err)
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UnixMilli()
	if p.CreatedAt == 0 {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	tx, err := s.db.Begin()
	if err != nil {
		return Presentation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRow("SELECT id FROM presentations WHERE id = ?", p.ID).Scan(&existingID)
	if err == sql.ErrNoRows {
		query := `
			INSERT INTO presentations (id, title, outline_data, theme_data, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.Exec(query, p.ID, p.Title, string(outlineData), string(themeData), p.CreatedAt, p.UpdatedAt); err != nil {
			return Presentation{}, fmt.Errorf("failed to insert presentation: %w", err)
		}
	} else if err != nil {
		return Presentation{}, fmt.Errorf("failed to check existing presentation: %w", err)
	} else {
		query := `
			UPDATE presentations
			SET title = ?, outline_data = ?, theme_data = ?, updated_at = ?
			WHERE id = ?
		`
		if _, err := tx.Exec(query, p.Title, string(outlineData), string(themeData), p.UpdatedAt, p.ID); err != nil {
			return Presentation{}, fmt.Errorf("failed to update presentation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Presentation{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

// Load retrieves one presentation by id.
func (s *PresentationService) Load(id string) (*Presentation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if id == "" {
		return nil, fmt.Errorf("presentation id is required")
	}

	var (
		title       string
		outlineData string
		themeData   string
		createdAt   int64
		updatedAt   int64
	)
	query := `
		SELECT title, outline_data, theme_data, created_at, updated_at
		FROM presentations
		WHERE id = ?
	`
	err := s.db.QueryRow(query, id).Scan(&title, &outlineData, &themeData, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("presentation not found: %s", id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to query presentation: %w", err)
	}

	var doc outlineDocument
	if err := json.Unmarshal([]byte(outlineData), &doc); err != nil {
		return nil, fmt.Errorf("failed to deserialize outline data: %w", err)
	}
	var theme config.Theme
	if err := json.Unmarshal([]byte(themeData), &theme); err != nil {
		return nil, fmt.Errorf("failed to deserialize theme data: %w", err)
	}

	return &Presentation{
		ID:        id,
		Title:     title,
		Outline:   doc.Outline,
		Charts:    doc.Charts,
		Theme:     theme,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// List returns every stored presentation, newest first, without the
// outline payloads.
func (s *PresentationService) List() ([]Presentation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	rows, err := s.db.Query(`
		SELECT id, title, theme_data, created_at, updated_at
		FROM presentations
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	defer rows.Close()

	var out []Presentation
	for rows.Next() {
		var p Presentation
		var themeData string
		if err := rows.Scan(&p.ID, &p.Title, &themeData, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan presentation row: %w", err)
		}
		if err := json.Unmarshal([]byte(themeData), &p.Theme); err != nil {
			return nil, fmt.Errorf("failed to deserialize theme data: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a presentation. Deleting an unknown id is an error.
func (s *PresentationService) Delete(id string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if id == "" {
		return fmt.Errorf("presentation id is required")
	}

	res, err := s.db.Exec("DELETE FROM presentations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete presentation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("presentation not found: %s", id)
	}
	return nil
}
