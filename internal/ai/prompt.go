package ai

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/cover_letter.md
var coverLetterPromptRaw string

// coverLetterTemplate is parsed once at package init and reused per request.
var coverLetterTemplate = template.Must(template.New("cover_letter").Parse(coverLetterPromptRaw))

// PromptData carries everything the cover-letter template interpolates.
type PromptData struct {
	Resume                 string
	JobTitle               string
	JobDescription         string
	EmployerName           string
	EmployerDescription    string
	AdditionalInstructions string
}

// RenderPrompt renders the cover-letter prompt for the given inputs.
func RenderPrompt(data PromptData) (string, error) {
	var sb strings.Builder
	if err := coverLetterTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
