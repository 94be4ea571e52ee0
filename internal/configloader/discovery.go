package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

// SourcePaths represents discovered style source paths.
type SourcePaths struct {
	// Project is a style file found by searching upward from the working
	// directory (e.g., ./.mdl_style.rb).
	Project string

	// Mdlrc is the .mdlrc file found in the working directory or home.
	Mdlrc string

	// Markdownlint is a markdownlint config in the working directory.
	Markdownlint string
}

// projectStyleFiles are the style file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectStyleFiles = []string{
	".mdl_style.rb",
	".mdlstyle.yml",
	".mdlstyle.yaml",
	".mdlstyle.json",
	".mdlstyle.hcl",
}

// mdlrcFile is the mdl settings file that may name a style.
const mdlrcFile = ".mdlrc"

// markdownlintConfigFiles are the markdownlint config files we detect for conversion.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintConfigFiles = []string{
	".markdownlint.json",
	".markdownlint.jsonc",
	".markdownlint.yaml",
	".markdownlint.yml",
	".markdownlint.cjs",
	".markdownlint.mjs",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds style sources for workDir. It searches for:
//   - a project style file, upward from workDir
//   - a .mdlrc in workDir, then in homeDir
//   - a markdownlint config in workDir
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir, homeDir string) (*SourcePaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &SourcePaths{}

	project, err := FindProjectStyle(ctx, workDir, homeDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	paths.Mdlrc = findMdlrc(workDir, homeDir)
	paths.Markdownlint = findMarkdownlintConfig(workDir)

	return paths, nil
}

// FindProjectStyle searches upward from startDir for a project style file.
// Returns the path to the first style file found, or empty string if none.
// Stops at VCS roots, at homeDir, or when reaching the filesystem root.
func FindProjectStyle(ctx context.Context, startDir, homeDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	if homeDir != "" {
		if absHome, err := filepath.Abs(homeDir); err == nil {
			homeDir = absHome
		}
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range projectStyleFiles {
			path := filepath.Join(currentDir, name)
			if fsutil.Exists(path) {
				return path, nil
			}
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}

		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// findMdlrc returns the .mdlrc in workDir, else the one in homeDir.
func findMdlrc(workDir, homeDir string) string {
	for _, dir := range []string{workDir, homeDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, mdlrcFile)
		if fsutil.Exists(path) {
			return path
		}
	}
	return ""
}

// findMarkdownlintConfig looks for a markdownlint config file in the given directory.
// Returns the path to the first found file, or empty string if none.
func findMarkdownlintConfig(dir string) string {
	for _, name := range markdownlintConfigFiles {
		path := filepath.Join(dir, name)
		if fsutil.Exists(path) {
			return path
		}
	}
	return ""
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		path := filepath.Join(dir, marker)
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// IsJavaScriptConfig returns true if the path is a JavaScript config file.
// These cannot be converted and require user action.
func IsJavaScriptConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".cjs" || ext == ".mjs"
}
