package assistant

import "findash-api/pkg/llm"

// Fallback replies shown when the chat provider fails. Each category gets its
// own text so users can tell configuration problems from transient ones.
const (
	FallbackAuth    = "The AI assistant is not configured correctly right now (authentication failed). Please contact the administrator."
	FallbackQuota   = "The AI assistant has reached its usage quota. Please try again later."
	FallbackNetwork = "The AI assistant could not be reached because of a network issue. Please try again in a moment."
	FallbackUnknown = "I'm experiencing technical difficulties. Please try again later."
)

// FallbackFor returns the reply text for a failure category.
func FallbackFor(c llm.Category) string {
	switch c {
	case llm.CategoryAuth:
		return FallbackAuth
	case llm.CategoryQuota:
		return FallbackQuota
	case llm.CategoryNetwork:
		return FallbackNetwork
	default:
		return FallbackUnknown
	}
}
