package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func initRepo(t *testing.T, dir string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestBuildFileAndLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src/app.ts", "line1\nline2\nline3\nline4\n")

	pc, err := Build(Options{Root: dir, FilePath: path, Lines: "2:3"})
	require.NoError(t, err)

	assert.Equal(t, "app.ts", pc.FileName)
	assert.Equal(t, path, pc.FilePath)
	assert.Equal(t, "typescript", pc.Language)
	assert.Equal(t, "line2\nline3", pc.Selection)
	assert.Empty(t, pc.ProjectStructure)
	assert.Empty(t, pc.GitStatus)
}

func TestBuildSelectionWinsOverLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main\n")

	pc, err := Build(Options{Root: dir, FilePath: path, Lines: "1", Selection: "fmt.Println()"})
	require.NoError(t, err)
	assert.Equal(t, "fmt.Println()", pc.Selection)
}

func TestBuildLineErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1\n")

	_, err := Build(Options{Root: dir, Lines: "1:2"})
	assert.Error(t, err)

	_, err = Build(Options{Root: dir, FilePath: path, Lines: "5:9"})
	assert.Error(t, err)

	_, err = Build(Options{Root: dir, FilePath: path, Lines: "3:1"})
	assert.Error(t, err)

	_, err = Build(Options{Root: dir, FilePath: path, Lines: "a:b"})
	assert.Error(t, err)
}

func TestBuildProjectWithoutGit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "")
	writeFile(t, dir, "a.go", "")
	writeFile(t, dir, "node_modules/dep/index.js", "")
	writeFile(t, dir, ".hidden/secret", "")

	pc, err := Build(Options{Root: dir, Project: true, Git: true})
	require.NoError(t, err)
	assert.Equal(t, "a.go\nb.go", pc.ProjectStructure)
	assert.Empty(t, pc.GitStatus)
}

func TestBuildProjectAndGitStatus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "pkg/util.go", "package pkg\n")
	initRepo(t, dir)

	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	pc, err := Build(Options{Root: dir, Project: true, Git: true})
	require.NoError(t, err)

	assert.Equal(t, "main.go\npkg/util.go", pc.ProjectStructure)
	assert.Contains(t, pc.GitStatus, "On branch master")
	assert.Contains(t, pc.GitStatus, " M main.go")
}

func TestGitStatusClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# hi\n")
	initRepo(t, dir)

	repo, err := OpenRepository(filepath.Join(dir))
	require.NoError(t, err)

	status, err := repo.StatusText()
	require.NoError(t, err)
	assert.Contains(t, status, "Working tree clean")
}

func TestRenderFileList(t *testing.T) {
	assert.Equal(t, "a\nb\nc", RenderFileList([]string{"c", "a", "b"}, 5))
	assert.Equal(t, "a\nb\n... and 1 more", RenderFileList([]string{"c", "a", "b"}, 2))
}

func TestBuildRelated(t *testing.T) {
	pc, err := Build(Options{Root: t.TempDir(), Related: []string{"a.go", "b.go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, pc.RelatedFiles)
}

func TestLanguageFor(t *testing.T) {
	tests := map[string]string{
		"main.go":           "go",
		"App.TSX":           "typescriptreact",
		"docker/Dockerfile": "dockerfile",
		"notes.txt":         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, LanguageFor(in), in)
	}
}
