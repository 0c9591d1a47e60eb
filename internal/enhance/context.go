package enhance

import (
	"fmt"
	"strings"

	"github.com/sant0-9/prompto/internal/workspace"
)

// RenderContext renders the selected, non-empty parts of pc as labeled
// sections in the order file, selection, project, git, related files.
func RenderContext(pc workspace.PromptContext, f Flags) string {
	var sections []string

	if f.File && pc.FileName != "" {
		line := "File: " + pc.FileName
		if pc.Language != "" {
			line += fmt.Sprintf(" (%s)", pc.Language)
		}
		sections = append(sections, line)
	}

	if f.Selection && pc.Selection != "" {
		sections = append(sections, "Selected code:\n"+fence(pc.Language, pc.Selection))
	}

	if f.Project && pc.ProjectStructure != "" {
		sections = append(sections, "Project structure:\n"+fence("", pc.ProjectStructure))
	}

	if f.Git && pc.GitStatus != "" {
		sections = append(sections, "Git status:\n"+fence("", pc.GitStatus))
	}

	if f.Related && len(pc.RelatedFiles) > 0 {
		var sb strings.Builder
		sb.WriteString("Related files:")
		for _, p := range pc.RelatedFiles {
			sb.WriteString("\n- " + p)
		}
		sections = append(sections, sb.String())
	}

	return strings.Join(sections, "\n\n")
}

func fence(lang, body string) string {
	return "```" + lang + "\n" + strings.TrimRight(body, "\n") + "\n```"
}
