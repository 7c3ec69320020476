package model

// AttemptKind tags the outcome of a full conversational turn.
type AttemptKind string

const (
	AttemptText  AttemptKind = "text"
	AttemptChart AttemptKind = "chart"
	AttemptError AttemptKind = "error"
)

// Classification is the fixed error category assigned when every model
// candidate has failed. It selects a user-facing message; the raw
// provider error text is never shown.
type Classification string

const (
	ClassAuth    Classification = "auth"
	ClassSafety  Classification = "safety"
	ClassQuota   Classification = "quota"
	ClassNetwork Classification = "network"
	ClassUnknown Classification = "unknown"
)

// Attempt is the result of one orchestrated turn: plain text, a chart
// with its caption, or a classified failure. Text is always set to a
// displayable string, including on the error path.
type Attempt struct {
	Kind           AttemptKind
	Text           string
	Chart          *ChartSpec
	Classification Classification
}

// TextAttempt wraps a plain text reply.
func TextAttempt(text string) Attempt {
	return Attempt{Kind: AttemptText, Text: text}
}

// ChartAttempt wraps a chart reply with its caption.
func ChartAttempt(spec *ChartSpec, caption string) Attempt {
	return Attempt{Kind: AttemptChart, Chart: spec, Text: caption}
}

// ErrorAttempt wraps a classified failure with its fixed user-facing
// message.
func ErrorAttempt(class Classification, message string) Attempt {
	return Attempt{Kind: AttemptError, Classification: class, Text: message}
}
