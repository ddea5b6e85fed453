package catalog

import (
	"fmt"
	"strings"

	"github.com/example/skillspace/pkg/models"
)

// Language is a logic core drill language
type Language string

const (
	LanguageCPP    Language = "C++"
	LanguagePython Language = "PYTHON"
	LanguageJava   Language = "JAVA"
	LanguageC      Language = "C"
)

// Languages lists the supported drill languages
var Languages = []Language{LanguageCPP, LanguagePython, LanguageJava, LanguageC}

// ParseLanguage accepts a language name in any case. Empty means C++.
func ParseLanguage(s string) (Language, error) {
	if s == "" {
		return LanguageCPP, nil
	}
	for _, l := range Languages {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	if strings.EqualFold(s, "cpp") {
		return LanguageCPP, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Boilerplate returns the starting code for a challenge in lang
func Boilerplate(lang Language, ch models.CodeChallenge) string {
	switch lang {
	case LanguagePython:
		return fmt.Sprintf("# Mission: %s\n# %s\n\ndef solve():\n    # Your logic here\n    print(\"Hello Guild\")\n\nsolve()",
			ch.Title, ch.Description)
	case LanguageJava:
		return fmt.Sprintf("public class Main {\n    public static void main(String[] args) {\n        // Mission: %s\n        // Logic for: %s\n        System.out.println(\"Logic Start\");\n    }\n}",
			ch.Title, ch.Description)
	case LanguageC:
		return fmt.Sprintf("#include <stdio.h>\n\nint main() {\n    // Mission: %s\n    // Objective: %s\n    printf(\"Logic Ready\\n\");\n    return 0;\n}",
			ch.Title, ch.Description)
	default:
		if ch.StarterCode != "" {
			return ch.StarterCode
		}
		return fmt.Sprintf("#include <iostream>\n\nint main() {\n    // Mission: %s\n    std::cout << \"C++ System Active\" << std::endl;\n    return 0;\n}",
			ch.Title)
	}
}
