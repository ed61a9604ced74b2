// Package config provides the sqlite-backed key/value store for runtime
// state and settings.
//
// Values are stored as JSON blobs under stable, type-qualified keys. Settings
// exist in one of three scopes: project-specific, global, or built-in default.
// Lookups in project scope fall back to global and then default, so a missing
// project setting is not an error.
package config

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Scope determines where a setting is stored and who sees it.
type Scope string

const (
	ScopeDefault Scope = "default"
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// GlobalProject is the project id used for settings outside any project.
const GlobalProject int64 = 0

// Database is a handle to the configuration store.
type Database struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the configuration database at path.
// Use ":memory:" for a throwaway in-memory store.
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive and serializes
	// writers, matching the one-call-in-flight contract of the callers.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			value TEXT,
			scope TEXT NOT NULL,
			project_id INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(project_id) REFERENCES projects(id)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS settings_key_scope
			ON settings(key, scope, project_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize config database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}

// CreateProject creates a new project and returns its id.
func (d *Database) CreateProject(name string) (int64, error) {
	res, err := d.db.Exec("INSERT INTO projects (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ProjectName returns the name of the project with the given id.
func (d *Database) ProjectName(pid int64) (string, bool, error) {
	var name string
	err := d.db.QueryRow("SELECT name FROM projects WHERE id = ?", pid).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// RenameProject changes the name of an existing project.
func (d *Database) RenameProject(pid int64, name string) error {
	res, err := d.db.Exec("UPDATE projects SET name = ? WHERE id = ?", name, pid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no project with id %d", pid)
	}
	return nil
}

// Put stores a value under the given key and scope, replacing any previous
// value. The pid is ignored unless scope is ScopeProject.
func (d *Database) Put(scope Scope, pid int64, key, value string) error {
	if scope != ScopeProject {
		pid = GlobalProject
	}
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, scope, project_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(key, scope, project_id) DO UPDATE SET value = excluded.value`,
		key, value, string(scope), pid)
	return err
}

// Get retrieves the value stored under key. For ScopeProject the lookup falls
// back to the global and then the default scope. A missing key is not an
// error; the second return value reports whether the key was found.
func (d *Database) Get(scope Scope, pid int64, key string) (string, bool, error) {
	type probe struct {
		scope Scope
		pid   int64
	}

	var probes []probe
	switch scope {
	case ScopeProject:
		probes = []probe{{ScopeProject, pid}, {ScopeGlobal, GlobalProject}, {ScopeDefault, GlobalProject}}
	case ScopeGlobal:
		probes = []probe{{ScopeGlobal, GlobalProject}, {ScopeDefault, GlobalProject}}
	default:
		probes = []probe{{ScopeDefault, GlobalProject}}
	}

	for _, p := range probes {
		var value string
		err := d.db.QueryRow(
			"SELECT value FROM settings WHERE key = ? AND scope = ? AND project_id = ?",
			key, string(p.scope), p.pid).Scan(&value)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return "", false, err
		}
		return value, true, nil
	}
	return "", false, nil
}

// Delete removes the value stored under key in the given scope. Deleting a
// missing key is a no-op.
func (d *Database) Delete(scope Scope, pid int64, key string) error {
	if scope != ScopeProject {
		pid = GlobalProject
	}
	_, err := d.db.Exec(
		"DELETE FROM settings WHERE key = ? AND scope = ? AND project_id = ?",
		key, string(scope), pid)
	return err
}

// PutJSON marshals v and stores it under key.
func (d *Database) PutJSON(scope Scope, pid int64, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	return d.Put(scope, pid, key, string(data))
}

// GetJSON retrieves the value stored under key and unmarshals it into out.
// Returns false and leaves out untouched if the key is absent.
func (d *Database) GetJSON(scope Scope, pid int64, key string, out any) (bool, error) {
	data, ok, err := d.Get(scope, pid, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}
	return true, nil
}
