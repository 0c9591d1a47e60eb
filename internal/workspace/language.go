package workspace

import (
	"path/filepath"
	"strings"
)

var languages = map[string]string{
	".go":     "go",
	".js":     "javascript",
	".jsx":    "javascriptreact",
	".mjs":    "javascript",
	".ts":     "typescript",
	".tsx":    "typescriptreact",
	".py":     "python",
	".rb":     "ruby",
	".rs":     "rust",
	".java":   "java",
	".kt":     "kotlin",
	".swift":  "swift",
	".c":      "c",
	".h":      "c",
	".cpp":    "cpp",
	".cc":     "cpp",
	".hpp":    "cpp",
	".cs":     "csharp",
	".php":    "php",
	".html":   "html",
	".css":    "css",
	".scss":   "scss",
	".vue":    "vue",
	".svelte": "svelte",
	".json":   "json",
	".yaml":   "yaml",
	".yml":    "yaml",
	".toml":   "toml",
	".md":     "markdown",
	".sql":    "sql",
	".sh":     "shellscript",
	".bash":   "shellscript",
}

// LanguageFor guesses an editor language id from the file extension.
// Unknown extensions yield "".
func LanguageFor(path string) string {
	base := filepath.Base(path)
	if base == "Dockerfile" {
		return "dockerfile"
	}
	if base == "Makefile" {
		return "makefile"
	}
	return languages[strings.ToLower(filepath.Ext(path))]
}
