package presets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmrzaf/rowgen/internal/domain"
)

type Repository interface {
	List() ([]*domain.Preset, error)
	Get(name string) (*domain.Preset, error)
	GetByPath(path string) (*domain.Preset, error)
}

// FileRepository reads preset schemas from a directory of YAML or JSON
// files. Unparsable files are skipped on List so a stray note in the
// directory does not break discovery.
type FileRepository struct {
	baseDir string
}

func NewFileRepository(baseDir string) *FileRepository {
	return &FileRepository{baseDir: baseDir}
}

func (r *FileRepository) List() ([]*domain.Preset, error) {
	if _, err := os.Stat(r.baseDir); os.IsNotExist(err) {
		return []*domain.Preset{}, nil
	}

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, err
	}

	presets := make([]*domain.Preset, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		preset, err := r.loadPreset(filepath.Join(r.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		presets = append(presets, preset)
	}

	return presets, nil
}

func (r *FileRepository) Get(name string) (*domain.Preset, error) {
	presets, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}

	return nil, fmt.Errorf("preset not found: %s", name)
}

func (r *FileRepository) GetByPath(path string) (*domain.Preset, error) {
	return r.loadPreset(path)
}

func (r *FileRepository) loadPreset(path string) (*domain.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var preset domain.Preset
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &preset)
	} else {
		err = yaml.Unmarshal(data, &preset)
	}
	if err != nil {
		return nil, err
	}

	if preset.Name == "" {
		preset.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &preset, nil
}
