package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a site request from a YAML (or JSON) file.
func Load(path string) (*SiteRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a site request document.
func Parse(data []byte) (*SiteRequest, error) {
	var req SiteRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing request YAML: %w", err)
	}
	return &req, nil
}

// LoadProject loads a site request from a project directory.
// It looks for site.yaml in the given directory.
func LoadProject(projectDir string) (*SiteRequest, error) {
	return Load(filepath.Join(projectDir, "site.yaml"))
}

// LoadAny loads path as a project directory or a single request file.
func LoadAny(path string) (*SiteRequest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}
	if info.IsDir() {
		return LoadProject(path)
	}
	return Load(path)
}

// LoadPlacement reads a zone placement request from a YAML file.
func LoadPlacement(path string) (*PlacementRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading placement file: %w", err)
	}
	var req PlacementRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing placement YAML: %w", err)
	}
	return &req, nil
}
