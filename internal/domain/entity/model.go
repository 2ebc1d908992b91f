package entity

import "strings"

// Model identifies the LLM backend a summary is produced with.
type Model string

const (
	ModelDeepSeek Model = "DeepSeek"
	ModelClaude   Model = "Claude"
	ModelGemini   Model = "Gemini"
	ModelBedrock  Model = "Bedrock"
	ModelOllama   Model = "Ollama"
)

// Models lists every supported backend in display order.
var Models = []Model{
	ModelDeepSeek,
	ModelClaude,
	ModelGemini,
	ModelBedrock,
	ModelOllama,
}

// ParseModel resolves a user supplied tag. Matching ignores case and surrounding spaces.
func ParseModel(s string) (Model, error) {
	tag := strings.TrimSpace(s)
	for _, m := range Models {
		if strings.EqualFold(tag, string(m)) {
			return m, nil
		}
	}
	return "", &UnsupportedModelError{Model: tag}
}

// IsKnown reports whether m is one of Models.
func (m Model) IsKnown() bool {
	for _, known := range Models {
		if m == known {
			return true
		}
	}
	return false
}

// RequiresCredential reports whether the backend needs an API key.
func (m Model) RequiresCredential() bool {
	return m != ModelOllama
}

// IsLocal reports whether the backend runs on the local machine.
func (m Model) IsLocal() bool {
	return m == ModelOllama
}

func (m Model) String() string {
	return string(m)
}
