// Package workspace collects the optional source context attached to a
// prompt: the current file, a selection, the project layout and git status.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// PromptContext is everything a prompt may carry about the code. Every field
// is optional; an empty field is simply not rendered.
type PromptContext struct {
	FileName         string   `json:"file_name,omitempty"`
	FilePath         string   `json:"file_path,omitempty"`
	Language         string   `json:"language,omitempty"`
	Selection        string   `json:"selection,omitempty"`
	ProjectStructure string   `json:"project_structure,omitempty"`
	GitStatus        string   `json:"git_status,omitempty"`
	RelatedFiles     []string `json:"related_files,omitempty"`
}

// Options says what Build should collect
type Options struct {
	// Root is the project directory; defaults to the working directory
	Root string

	// FilePath is the "current file"
	FilePath string
	// Lines selects a 1-based inclusive range "start:end" from FilePath
	Lines string
	// Selection is literal selected code; it wins over Lines
	Selection string

	Project bool
	Git     bool
	Related []string

	// MaxProjectFiles caps the project listing
	MaxProjectFiles int
}

const defaultMaxProjectFiles = 200

// skipDirs are never descended into when walking a non-git project
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "dist": true,
	"build": true, ".idea": true, ".vscode": true, "__pycache__": true,
}

// Build collects a PromptContext. Missing optional data (no git repository,
// no file) is left empty; only unreadable explicit inputs are errors.
func Build(opts Options) (PromptContext, error) {
	var pc PromptContext

	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return pc, fmt.Errorf("failed to get current directory: %w", err)
		}
		root = wd
	}

	if opts.FilePath != "" {
		pc.FilePath = opts.FilePath
		pc.FileName = filepath.Base(opts.FilePath)
		pc.Language = LanguageFor(opts.FilePath)
	}

	switch {
	case opts.Selection != "":
		pc.Selection = opts.Selection
	case opts.Lines != "":
		if opts.FilePath == "" {
			return pc, fmt.Errorf("a line range needs a file")
		}
		sel, err := readLines(opts.FilePath, opts.Lines)
		if err != nil {
			return pc, err
		}
		pc.Selection = sel
	}

	var repo *Repository
	if opts.Project || opts.Git {
		r, err := OpenRepository(root)
		if err != nil {
			log.Debug().Err(err).Str("root", root).Msg("No git repository for context")
		} else {
			repo = r
		}
	}

	if opts.Project {
		limit := opts.MaxProjectFiles
		if limit <= 0 {
			limit = defaultMaxProjectFiles
		}
		files, err := projectFiles(repo, root)
		if err != nil {
			return pc, err
		}
		pc.ProjectStructure = RenderFileList(files, limit)
	}

	if opts.Git && repo != nil {
		status, err := repo.StatusText()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read git status")
		} else {
			pc.GitStatus = status
		}
	}

	pc.RelatedFiles = append(pc.RelatedFiles, opts.Related...)
	return pc, nil
}

// readLines returns the 1-based inclusive line range "start:end"
// (or a single "n") from path.
func readLines(path, rng string) (string, error) {
	start, end, err := parseRange(rng)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if start > len(lines) {
		return "", fmt.Errorf("line %d is past the end of %s (%d lines)", start, path, len(lines))
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start-1:end], "\n"), nil
}

func parseRange(rng string) (int, int, error) {
	startStr, endStr, found := strings.Cut(rng, ":")
	if !found {
		endStr = startStr
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q: %w", rng, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q: %w", rng, err)
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid line range %q", rng)
	}
	return start, end, nil
}

func projectFiles(repo *Repository, root string) ([]string, error) {
	if repo != nil {
		files, err := repo.ListFiles()
		if err == nil && len(files) > 0 {
			return files, nil
		}
		// fresh repository without commits: fall back to the walk
	}
	return walkFiles(root)
}

func walkFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return files, nil
}

// RenderFileList sorts files and keeps at most limit of them
func RenderFileList(files []string, limit int) string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	if len(sorted) <= limit {
		return strings.Join(sorted, "\n")
	}
	return strings.Join(sorted[:limit], "\n") + fmt.Sprintf("\n... and %d more", len(sorted)-limit)
}
