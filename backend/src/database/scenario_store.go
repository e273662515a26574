// backend/src/database/scenario_store.go
package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

// DefaultScenarios is the fixed named-scenario set a project starts
// with before its owner customises it, per SPEC_FULL.md's "Named
// scenarios" feature.
func DefaultScenarios() []models.NamedScenario {
	return []models.NamedScenario{
		{
			Name:        "optimistic",
			Description: "Prices 10% higher, operating costs 5% lower",
			Adjustments: []models.Adjustment{
				{Variable: models.VariablePrice, Delta: 10},
				{Variable: models.VariableOperatingCosts, Delta: -5},
			},
		},
		{
			Name:        "base",
			Description: "No adjustments applied to the baseline model",
			Adjustments: nil,
		},
		{
			Name:        "pessimistic",
			Description: "Prices 10% lower, operating costs 5% higher",
			Adjustments: []models.Adjustment{
				{Variable: models.VariablePrice, Delta: -10},
				{Variable: models.VariableOperatingCosts, Delta: 5},
			},
		},
	}
}

// ListScenarios returns the named scenario set stored for a project,
// seeding and persisting the fixed defaults on first access if none
// have been saved yet.
func ListScenarios(db *sql.DB, userID int64, projectID string) ([]models.NamedScenario, error) {
	rows, err := db.Query(`
		SELECT name, description, adjustments FROM scenarios
		WHERE project_id = ? AND user_id = ? ORDER BY name`, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []models.NamedScenario
	for rows.Next() {
		var s models.NamedScenario
		var adjustments string
		if err := rows.Scan(&s.Name, &s.Description, &adjustments); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(adjustments), &s.Adjustments); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(scenarios) > 0 {
		return scenarios, nil
	}

	defaults := DefaultScenarios()
	if err := SaveScenarios(db, userID, projectID, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// SaveScenarios replaces the named scenario set stored for a project
// with the given one, in a single transaction.
func SaveScenarios(db *sql.DB, userID int64, projectID string, scenarios []models.NamedScenario) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scenarios WHERE project_id = ? AND user_id = ?", projectID, userID); err != nil {
		return err
	}

	now := time.Now()
	for _, s := range scenarios {
		adjustments, err := json.Marshal(s.Adjustments)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO scenarios (id, project_id, user_id, name, description, adjustments, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), projectID, userID, s.Name, s.Description, string(adjustments), now, now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
