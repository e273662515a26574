// backend/src/database/project_store.go
package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

var ErrProjectNotFound = errors.New("project not found")

// SavedProject is a stored project snapshot: the normalized identity
// columns plus the full ProjectModel serialised as JSON. The engine
// never reads from the database directly; it operates on the
// ProjectModel decoded out of Snapshot.
type SavedProject struct {
	ID        string
	UserID    int64
	Name      string
	Snapshot  models.ProjectModel
	CreatedAt time.Time
	UpdatedAt time.Time
}

func SaveProject(db *sql.DB, userID int64, project models.ProjectModel) (*SavedProject, error) {
	snapshot, err := json.Marshal(project)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO projects (id, user_id, name, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		project.ID, userID, project.Name, string(snapshot), now, now,
	)
	if err != nil {
		return nil, err
	}

	return &SavedProject{
		ID:        project.ID,
		UserID:    userID,
		Name:      project.Name,
		Snapshot:  project,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func scanProject(row *sql.Row) (*SavedProject, error) {
	var p SavedProject
	var snapshot string
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &snapshot, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(snapshot), &p.Snapshot); err != nil {
		return nil, err
	}
	return &p, nil
}

func GetProject(db *sql.DB, userID int64, projectID string) (*SavedProject, error) {
	row := db.QueryRow(`
		SELECT id, user_id, name, snapshot, created_at, updated_at
		FROM projects WHERE id = ? AND user_id = ?`, projectID, userID)
	return scanProject(row)
}

func ListProjects(db *sql.DB, userID int64) ([]SavedProject, error) {
	rows, err := db.Query(`
		SELECT id, user_id, name, snapshot, created_at, updated_at
		FROM projects WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []SavedProject
	for rows.Next() {
		var p SavedProject
		var snapshot string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &snapshot, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(snapshot), &p.Snapshot); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func DeleteProject(db *sql.DB, userID int64, projectID string) error {
	res, err := db.Exec("DELETE FROM projects WHERE id = ? AND user_id = ?", projectID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
