package extraction

import (
	"encoding/json"
	"strings"
)

// parseCandidate extracts a single JSON object from a model response.
// Anything that is not one JSON object yields an empty candidate rather than
// an error: the model's output format is not guaranteed, and "nothing
// extracted" is recoverable downstream while a hard failure is not.
func parseCandidate(text string) Candidate {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - first { and last }
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx == -1 || endIdx < startIdx {
		return Candidate{}
	}

	var c Candidate
	if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &c); err != nil {
		return Candidate{}
	}
	return c
}
