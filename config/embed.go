package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var specsFS embed.FS

// SpecDir is the on-disk override directory; files found there shadow
// the embedded defaults and are what the watcher observes.
const SpecDir = "config"

func read(name string) ([]byte, error) {
	clean, err := cleanSpecPath(name)
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(filepath.Join(SpecDir, clean)); err == nil {
		return data, nil
	}
	return specsFS.ReadFile(clean)
}

func cleanSpecPath(name string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if clean == "" || strings.Contains(clean, "..") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("invalid spec path %q", name)
	}
	ext := strings.ToLower(filepath.Ext(clean))
	if ext != ".yaml" && ext != ".yml" {
		return "", fmt.Errorf("spec %q is not a yaml file", name)
	}
	return clean, nil
}
