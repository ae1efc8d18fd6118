package marble

import "strings"

// Format returns the canonical rendering of input with one top-level
// statement per line. Sources with syntax errors are not formatted.
func Format(input string) (string, error) {
	program, err := Parse(input)
	if err != nil {
		return "", err
	}
	if len(program.Statements) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, stmt := range program.Statements {
		b.WriteString(terminated(stmt))
		b.WriteString("\n")
	}
	return b.String(), nil
}
