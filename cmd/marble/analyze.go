package main

import (
	"fmt"
	"sort"

	"github.com/mgomes/marblescript/marble"
	"github.com/spf13/cobra"
)

type lintWarning struct {
	Pos     marble.Position
	Message string
}

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report suspicious but valid constructs",
		Long: `Parses a source file and reports statements that can never run,
if-conditions that are constant and empty if branches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readSource(args)
			if err != nil {
				return err
			}
			program, err := marble.Parse(source)
			if err != nil {
				return fmt.Errorf("analysis parse failed: %w", err)
			}

			warnings := analyzeProgram(program)
			if len(warnings) == 0 {
				fmt.Fprintln(a.out, "No issues found")
				return nil
			}
			for _, warning := range warnings {
				fmt.Fprintf(a.out, "%s:%d:%d: %s\n", name, warning.Pos.Line, warning.Pos.Column, warning.Message)
			}
			return fmt.Errorf("analysis found %d issue(s)", len(warnings))
		},
	}
}

func analyzeProgram(program *marble.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	warnings = lintUnreachable(program.Statements, warnings)

	marble.Inspect(program, func(n marble.Node) bool {
		switch node := n.(type) {
		case *marble.BlockStmt:
			warnings = lintUnreachable(node.Statements, warnings)
		case *marble.IfExpr:
			if cond, ok := node.Condition.(*marble.BoolLiteral); ok {
				warnings = append(warnings, lintWarning{
					Pos:     cond.Pos(),
					Message: fmt.Sprintf("if condition is always %t", cond.Value),
				})
			}
			if node.Consequence != nil && len(node.Consequence.Statements) == 0 {
				warnings = append(warnings, lintWarning{Pos: node.Consequence.Pos(), Message: "empty if branch"})
			}
			if node.Alternative != nil && len(node.Alternative.Statements) == 0 {
				warnings = append(warnings, lintWarning{Pos: node.Alternative.Pos(), Message: "empty else branch"})
			}
		}
		return true
	})

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		return warnings[i].Pos.Column < warnings[j].Pos.Column
	})
	return warnings
}

func lintUnreachable(stmts []marble.Statement, warnings []lintWarning) []lintWarning {
	for i, stmt := range stmts {
		if _, ok := stmt.(*marble.ReturnStmt); ok && i < len(stmts)-1 {
			return append(warnings, lintWarning{
				Pos:     stmts[i+1].Pos(),
				Message: "unreachable statement after return",
			})
		}
	}
	return warnings
}
