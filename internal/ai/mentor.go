package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Generation parameters per operation
const (
	mentorTemperature     = 0.6
	mentorTopP            = 0.9
	validationTemperature = 0.1
	toolTemperature       = 0.2
)

// Ask answers a question as a senior technical mentor for domain
func (m *Mentor) Ask(ctx context.Context, domain, query string) Reply {
	prompt := fmt.Sprintf(`You are the SkillSpace Senior Technical Mentor specializing in %s.
Your goal is to provide elite-level, clear, and perfectly formatted technical advice.

RULES:
1. Use CLEAR HEADINGS (##) for different sections.
2. Use BULLET POINTS for lists.
3. Wrap all code in triple backticks with the language name (e.g., `+"```cpp"+`).
4. Use **bold** for key terms.
5. Keep explanations high-density but easy to skim.
6. If asked for a solution, explain the LOGIC first, then provide the CODE.

User Question: "%s"`, domain, query)

	text, err := m.generate(ctx, prompt, mentorTemperature, genai.Ptr[float32](mentorTopP))
	if err != nil {
		return Reply{Status: StatusFailed, Text: FallbackMentorError, Reason: err.Error()}
	}
	if text == "" {
		return Reply{Status: StatusEmpty, Text: FallbackEmptyReply, Reason: "empty reply"}
	}
	return Reply{Status: StatusOK, Text: text}
}

// Validate asks the model whether code solves the challenge in language
func (m *Mentor) Validate(ctx context.Context, challenge, code, language string) Verdict {
	if language == "" {
		language = "C++"
	}

	prompt := fmt.Sprintf(`You are a multi-language Logic Validator for SkillSpace.
Current Language: %s
Challenge Description: "%s"
User's Code:
`+"```%s\n%s\n```"+`

TASK:
1. Analyze the logic of the code specifically for the %s syntax and paradigms.
2. If it solves the problem described, even if minor formatting differs, start with "PASS".
3. If there is a major logical error or it does not address the challenge in %s, start with "FAIL".
4. If FAIL, provide a 1-sentence explanation of the error.

Response Format:
[PASS/FAIL]: [Explanation]`, language, challenge, strings.ToLower(language), code, language, language)

	text, err := m.generate(ctx, prompt, validationTemperature, nil)
	if err != nil {
		return Verdict{Kind: VerdictFail, Reason: validationErrorReason, Raw: FallbackValidation, Failed: true}
	}

	verdict := DecodeVerdict(text)
	m.logger.Debug("validation verdict",
		zap.String("language", language),
		zap.String("kind", string(verdict.Kind)))
	return verdict
}

// DecodeVerdict turns a PASS/FAIL reply into a Verdict. Only a reply that
// starts with PASS and mentions no error is accepted.
func DecodeVerdict(raw string) Verdict {
	text := strings.TrimSpace(raw)
	upper := strings.ToUpper(text)

	switch {
	case text == "":
		return Verdict{Kind: VerdictFail, Reason: "empty verdict", Raw: raw}
	case strings.HasPrefix(upper, "PASS") && !strings.Contains(upper, "ERROR"):
		return Verdict{Kind: VerdictPass, Reason: explanation(text, "PASS"), Raw: raw}
	case strings.HasPrefix(upper, "FAIL"):
		return Verdict{Kind: VerdictFail, Reason: explanation(text, "FAIL"), Raw: raw}
	default:
		return Verdict{Kind: VerdictFail, Reason: text, Raw: raw}
	}
}

// explanation strips the verdict prefix and separators
func explanation(text, prefix string) string {
	rest := text[len(prefix):]
	return strings.TrimSpace(strings.TrimLeft(rest, " :-]"))
}

// Tool is a developer toolbox helper
type Tool string

const (
	ToolTerminal Tool = "terminal"
	ToolTesting  Tool = "testing"
	ToolRegex    Tool = "regex"
)

// ParseTool validates a tool name
func ParseTool(s string) (Tool, bool) {
	switch Tool(s) {
	case ToolTerminal, ToolTesting, ToolRegex:
		return Tool(s), true
	}
	return "", false
}

// DevTool runs a developer toolbox prompt
func (m *Mentor) DevTool(ctx context.Context, tool Tool, input string) Reply {
	var prompt string
	switch tool {
	case ToolTerminal:
		prompt = "Convert the following natural language request into a concise shell command (bash/zsh). " +
			"Output ONLY the command in a code block, then a one-sentence explanation. Request: " + input
	case ToolTesting:
		prompt = "Generate a comprehensive set of Unit Tests for the following code snippet. " +
			"Use the most appropriate framework (e.g., Jest for JS, PyTest for Python). Code: " + input
	case ToolRegex:
		prompt = "Generate and explain a Regular Expression for the following requirement: " + input
	default:
		return Reply{Status: StatusFailed, Text: FallbackToolingError, Reason: fmt.Sprintf("unknown tool %q", tool)}
	}

	text, err := m.generate(ctx, prompt, toolTemperature, nil)
	if err != nil {
		return Reply{Status: StatusFailed, Text: FallbackToolingError, Reason: err.Error()}
	}
	if text == "" {
		return Reply{Status: StatusEmpty, Text: FallbackToolingError, Reason: "empty reply"}
	}
	return Reply{Status: StatusOK, Text: text}
}
