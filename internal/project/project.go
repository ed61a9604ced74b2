// Package project provides scanning project handling and persistence.
//
// A project ties a film reel to its format, its scan progress and the
// directories holding the captured images. All state lives in the
// configuration database; the project name itself is kept in the database's
// project table so that settings can be scoped to it.
package project

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/innot/tofisca/internal/config"
	"github.com/innot/tofisca/internal/film"
)

// Settings database key for the project state blob.
const keyState = "project.state"

// Project describes one film scanning project.
type Project struct {
	ID   int64  `json:"-"`
	Name string `json:"-"`

	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// FilmFormat is the key of the film specification, e.g. "super8".
	FilmFormat string `json:"film_format"`

	// CurrentFrame is the number of the next frame to scan.
	CurrentFrame int `json:"current_frame"`

	// Image paths. Relative paths are resolved against RootPath.
	RootPath          string `json:"root_path,omitempty"`
	ScannedImagesPath string `json:"scanned_images,omitempty"`
	FinalImagesPath   string `json:"final_images,omitempty"`
}

// New creates a new project in the database and returns it.
func New(db *config.Database, name, filmFormat string) (*Project, error) {
	if film.Get(filmFormat) == nil {
		return nil, fmt.Errorf("unknown film format %q", filmFormat)
	}

	id, err := db.CreateProject(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", name, err)
	}

	now := time.Now()
	proj := &Project{
		ID:         id,
		Name:       name,
		Version:    1,
		Created:    now,
		Modified:   now,
		FilmFormat: filmFormat,
	}
	if err := proj.Save(db); err != nil {
		return nil, err
	}
	return proj, nil
}

// Load loads the project with the given id from the database.
func Load(db *config.Database, id int64) (*Project, error) {
	name, ok, err := db.ProjectName(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no project with id %d", id)
	}

	proj := &Project{ID: id, Name: name}
	ok, err = db.GetJSON(config.ScopeProject, id, keyState, proj)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("project %d has no stored state", id)
	}
	return proj, nil
}

// Save writes the project state to the database.
func (p *Project) Save(db *config.Database) error {
	p.Modified = time.Now()
	if err := db.PutJSON(config.ScopeProject, p.ID, keyState, p); err != nil {
		return fmt.Errorf("failed to save project %d: %w", p.ID, err)
	}
	return nil
}

// Rename changes the project name in the database.
func (p *Project) Rename(db *config.Database, name string) error {
	if err := db.RenameProject(p.ID, name); err != nil {
		return err
	}
	p.Name = name
	return p.Save(db)
}

// Spec returns the film specification for the project's film format, or nil
// if the format key is not registered.
func (p *Project) Spec() *film.Spec {
	return film.Get(p.FilmFormat)
}

// ScannedImages returns the absolute path of the raw scan directory. An
// unset path defaults to "scanned" below the project root.
func (p *Project) ScannedImages() string {
	return p.resolve(p.ScannedImagesPath, "scanned")
}

// FinalImages returns the absolute path of the processed image directory. An
// unset path defaults to "final" below the project root.
func (p *Project) FinalImages() string {
	return p.resolve(p.FinalImagesPath, "final")
}

func (p *Project) resolve(path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.RootPath, path)
}
