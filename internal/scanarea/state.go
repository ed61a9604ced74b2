package scanarea

import (
	"fmt"

	"github.com/innot/tofisca/internal/config"
)

// Settings database keys for the persisted manager state.
const (
	keyPerforation = "scanarea.perforation"
	keyArea        = "scanarea.area"
	keyThresholds  = "scanarea.thresholds"
)

func stateScope(projectID int64) config.Scope {
	if projectID == config.GlobalProject {
		return config.ScopeGlobal
	}
	return config.ScopeProject
}

// SaveState persists the reference perforation, scan area and threshold
// levels to the settings database so a project can resume scanning after a
// restart. Returns ErrNotSetUp if the manager has no state to save.
func (m *Manager) SaveState(db *config.Database, projectID int64) error {
	if m.scanArea == nil || m.reference == nil {
		return ErrNotSetUp
	}
	scope := stateScope(projectID)

	if err := db.PutJSON(scope, projectID, keyPerforation, m.reference); err != nil {
		return fmt.Errorf("save reference perforation: %w", err)
	}
	if err := db.PutJSON(scope, projectID, keyArea, m.scanArea); err != nil {
		return fmt.Errorf("save scan area: %w", err)
	}
	if m.levels != nil {
		if err := db.PutJSON(scope, projectID, keyThresholds, m.levels); err != nil {
			return fmt.Errorf("save threshold levels: %w", err)
		}
	}
	return nil
}

// LoadState restores previously saved state from the settings database.
// Missing keys leave the corresponding fields untouched, so a manager loaded
// from an empty database still reports ErrNotSetUp from Update.
func (m *Manager) LoadState(db *config.Database, projectID int64) error {
	scope := stateScope(projectID)

	var ref PerforationLocation
	ok, err := db.GetJSON(scope, projectID, keyPerforation, &ref)
	if err != nil {
		return fmt.Errorf("load reference perforation: %w", err)
	}
	if ok {
		m.reference = &ref
	}

	var area ScanArea
	ok, err = db.GetJSON(scope, projectID, keyArea, &area)
	if err != nil {
		return fmt.Errorf("load scan area: %w", err)
	}
	if ok {
		m.scanArea = &area
	}

	var levels ThresholdLevels
	ok, err = db.GetJSON(scope, projectID, keyThresholds, &levels)
	if err != nil {
		return fmt.Errorf("load threshold levels: %w", err)
	}
	if ok {
		m.levels = &levels
	}

	return nil
}
