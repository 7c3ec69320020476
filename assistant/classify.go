package assistant

import (
	"strings"

	"ulapchat/model"
)

// Fixed user-facing messages per failure classification. Raw provider
// error text is never shown to the user.
var classMessages = map[model.Classification]string{
	model.ClassAuth:    "I can't reach the assistant service because its credentials were rejected. Please contact support.",
	model.ClassSafety:  "I wasn't able to answer that question. Please try rephrasing it.",
	model.ClassQuota:   "The assistant is receiving too many requests right now. Please try again in a moment.",
	model.ClassNetwork: "I couldn't reach the assistant service. Please check your connection and try again.",
	model.ClassUnknown: "Something went wrong while answering. Please try again.",
}

// Classify sorts an exhausted-fallback error into the fixed taxonomy.
// Matching is against lower-cased error text because every provider SDK
// wraps its failures differently.
func Classify(err error) model.Classification {
	if err == nil {
		return model.ClassUnknown
	}
	text := strings.ToLower(err.Error())

	switch {
	case containsAny(text, "api key", "unauthorized", "401", "403", "credential", "permission"):
		return model.ClassAuth
	case containsAny(text, "safety", "blocked", "content filter", "content_filter", "refused"):
		return model.ClassSafety
	case containsAny(text, "429", "quota", "rate limit", "rate_limit", "overloaded", "capacity"):
		return model.ClassQuota
	case containsAny(text, "connection", "dial", "timeout", "deadline", "no such host", "network", "eof"):
		return model.ClassNetwork
	default:
		return model.ClassUnknown
	}
}

// ClassMessage returns the fixed user-facing sentence for a
// classification.
func ClassMessage(class model.Classification) string {
	if msg, ok := classMessages[class]; ok {
		return msg
	}
	return classMessages[model.ClassUnknown]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
