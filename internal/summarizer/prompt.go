package summarizer

import (
	"fmt"
	"strings"
)

const (
	testModeNote   = "Note: This summary is based on a 1-minute test sample."
	testModePrefix = "TEST MODE SUMMARY (1 minute sample)\n\n"
)

func systemPrompt(language string, testMode bool) string {
	prompt := fmt.Sprintf("You are a helpful assistant that creates concise summaries. "+
		"Please summarize the following transcript in %s. "+
		"Focus on key points, main topics discussed, and important conclusions.", language)
	if testMode {
		prompt += " " + testModeNote
	}
	return prompt
}

func userPrompt(transcript string) string {
	return "Please summarize this transcript:\n\n" + transcript
}

func decorate(summary string, testMode bool) string {
	summary = strings.TrimSpace(summary)
	if testMode {
		return testModePrefix + summary
	}
	return summary
}
