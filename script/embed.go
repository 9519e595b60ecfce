package script

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed layouts/*.tengo
var layoutsFS embed.FS

// LayoutDir is the on-disk override directory watched for live edits.
const LayoutDir = "layouts"

func load(name string) ([]byte, error) {
	clean, err := cleanLayoutPath(name)
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(filepath.Join(LayoutDir, clean)); err == nil {
		return data, nil
	}
	return layoutsFS.ReadFile("layouts/" + clean)
}

func cleanLayoutPath(name string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	clean = strings.TrimPrefix(clean, "layouts/")
	if clean == "" || strings.Contains(clean, "..") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("invalid layout path %q", name)
	}
	if strings.ToLower(filepath.Ext(clean)) != ".tengo" {
		return "", fmt.Errorf("layout %q is not a tengo script", name)
	}
	return clean, nil
}
