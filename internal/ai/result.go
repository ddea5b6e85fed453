package ai

// Fallback texts returned in place of a model reply
const (
	FallbackEmptyReply    = "I'm having trouble connecting to my knowledge base. Try again shortly!"
	FallbackMentorError   = "I encountered an error while thinking. Let's try that again."
	FallbackValidation    = "FAIL: System error during validation."
	FallbackToolingError  = "Tooling system failure. Ensure your input is valid code or instruction."
	validationErrorReason = "System error during validation."
)

// Status tags the outcome of a mentor call
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Reply is the result of a free-text mentor call. Text is always safe to show.
type Reply struct {
	Status Status `json:"status"`
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

// OK reports whether the text came from the model
func (r Reply) OK() bool {
	return r.Status == StatusOK
}

// VerdictKind is the decoded outcome of a code validation
type VerdictKind string

const (
	VerdictPass VerdictKind = "pass"
	VerdictFail VerdictKind = "fail"
)

// Verdict is a code validation result decoded once from the model reply
type Verdict struct {
	Kind   VerdictKind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
	Raw    string      `json:"raw"`
	// Failed is set when the verdict comes from a service failure, not the model
	Failed bool `json:"failed,omitempty"`
}

// Passed reports whether the code was accepted
func (v Verdict) Passed() bool {
	return v.Kind == VerdictPass
}
