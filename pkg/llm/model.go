package llm

import "strings"

// upstreamPrefixes are accepted in configs for readability but rejected by the
// OpenAI compatible Gemini endpoint.
var upstreamPrefixes = []string{"google/", "models/"}

// UpstreamModel resolves a configured alias to the model name sent upstream.
// The alias is used when the model has no explicit model_name.
func UpstreamModel(alias string, cfg ModelConfig) string {
	name := strings.TrimSpace(cfg.ModelName)
	if name == "" {
		name = strings.TrimSpace(alias)
	}
	for _, prefix := range upstreamPrefixes {
		name = strings.TrimPrefix(name, prefix)
	}
	return name
}
