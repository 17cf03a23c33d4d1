package analysis

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"
)

// atlasPrompt is the persona and formatting policy sent ahead of every request.
//
//go:embed prompts/atlas.txt
var atlasPrompt string

// PersonaName labels assistant turns in rendered history.
const PersonaName = "Atlas"

const (
	noTranscription     = "No transcription available"
	contextSnippetRunes = 500
	ellipsis            = "..."
)

// BuildPrompt assembles the system prompt and the user turn, history included.
// Output depends only on req.
func BuildPrompt(req Request) Prompt {
	return Prompt{
		System: SystemPrompt(req.PatientInfo),
		User:   WithHistory(req.PreviousMessages, UserContent(req)),
	}
}

// SystemPrompt returns the persona text followed by the patient block when p is set.
func SystemPrompt(p *PatientInfo) string {
	base := strings.TrimSpace(atlasPrompt)
	if p == nil {
		return base
	}
	return base + patientBlock(*p)
}

func patientBlock(p PatientInfo) string {
	return fmt.Sprintf("\nPatient Information:\n• Patient ID: %s\n• Name: %s\n• Species: %s\n",
		orDefault(p.PatientID, "N/A"),
		orDefault(p.Name, "Unknown"),
		orDefault(p.Species, "Unknown"),
	)
}

// UserContent builds the current user turn: an initial case-summary instruction,
// or the follow-up question prefixed with a snippet of the recording.
func UserContent(req Request) string {
	if req.FollowUpQuestion == "" {
		return fmt.Sprintf(`Please analyze this veterinary case recording and provide a case summary only:

Recording Transcription:
%s

Provide a helpful case summary based on the recording. Do not include differential diagnoses, treatment plans, or procedures - only summarize the key findings.`,
			orDefault(req.Transcription, noTranscription))
	}

	var snippet string
	if req.Transcription != "" {
		snippet = fmt.Sprintf("[Context from recording: %s]\n\n", truncate(req.Transcription, contextSnippetRunes))
	}
	return snippet + req.FollowUpQuestion
}

// truncate keeps the first n runes of s and marks the cut with an ellipsis.
// The kept prefix is a byte slice of s, so invalid UTF-8 passes through unchanged.
func truncate(s string, n int) string {
	i := 0
	for range n {
		if i >= len(s) {
			return s
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	if i >= len(s) {
		return s
	}
	return s[:i] + ellipsis
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
