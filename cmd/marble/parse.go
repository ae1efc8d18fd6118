package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mgomes/marblescript/marble"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatCode = "code"
	formatYAML = "yaml"
	formatJSON = "json"
)

func newParseCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file and print its canonical form or AST",
		Long: `Parses a source file (or standard input) and prints the regenerated
source. With --format yaml or --format json the syntax tree is dumped instead.

Syntax errors are written to stderr and the command fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readSource(args)
			if err != nil {
				return err
			}
			p := marble.NewParser(marble.NewLexer(source))
			program := p.ParseProgram()
			errs := p.Errors()
			a.log.Debug("parsed source", "file", name, "statements", len(program.Statements), "errors", len(errs))
			if len(errs) > 0 {
				for _, err := range errs {
					fmt.Fprintln(a.errOut, err)
				}
				return fmt.Errorf("%s: %d syntax error(s)", name, len(errs))
			}
			return writeProgram(a.out, program, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatCode, "output format: code, yaml or json")
	return cmd
}

func writeProgram(w io.Writer, program *marble.Program, format string) error {
	switch format {
	case formatCode:
		_, err := fmt.Fprintln(w, program.String())
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(buildTree(program)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(buildTree(program)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return errors.New("unknown format " + format + " (want code, yaml or json)")
	}
}

// treeNode is the serializable shape of an AST node.
type treeNode struct {
	Kind        string      `yaml:"kind" json:"kind"`
	Pos         string      `yaml:"pos,omitempty" json:"pos,omitempty"`
	Name        string      `yaml:"name,omitempty" json:"name,omitempty"`
	Operator    string      `yaml:"operator,omitempty" json:"operator,omitempty"`
	Int         *int64      `yaml:"int,omitempty" json:"int,omitempty"`
	Bool        *bool       `yaml:"bool,omitempty" json:"bool,omitempty"`
	Left        *treeNode   `yaml:"left,omitempty" json:"left,omitempty"`
	Right       *treeNode   `yaml:"right,omitempty" json:"right,omitempty"`
	Condition   *treeNode   `yaml:"condition,omitempty" json:"condition,omitempty"`
	Consequence *treeNode   `yaml:"consequence,omitempty" json:"consequence,omitempty"`
	Alternative *treeNode   `yaml:"alternative,omitempty" json:"alternative,omitempty"`
	Callee      *treeNode   `yaml:"callee,omitempty" json:"callee,omitempty"`
	Value       *treeNode   `yaml:"value,omitempty" json:"value,omitempty"`
	Body        *treeNode   `yaml:"body,omitempty" json:"body,omitempty"`
	Params      []*treeNode `yaml:"params,omitempty" json:"params,omitempty"`
	Args        []*treeNode `yaml:"args,omitempty" json:"args,omitempty"`
	Statements  []*treeNode `yaml:"statements,omitempty" json:"statements,omitempty"`
}

func buildTree(node marble.Node) *treeNode {
	if node == nil {
		return nil
	}
	out := &treeNode{}
	if _, ok := node.(*marble.Program); !ok {
		pos := node.Pos()
		out.Pos = fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}

	switch n := node.(type) {
	case *marble.Program:
		out.Kind = "Program"
		out.Statements = buildStatements(n.Statements)
	case *marble.LetStmt:
		out.Kind = "LetStatement"
		if n.Name != nil {
			out.Name = n.Name.Name
		}
		out.Value = buildExpr(n.Value)
	case *marble.ReturnStmt:
		out.Kind = "ReturnStatement"
		out.Value = buildExpr(n.Value)
	case *marble.ExprStmt:
		out.Kind = "ExpressionStatement"
		out.Value = buildExpr(n.Expr)
	case *marble.BlockStmt:
		out.Kind = "BlockStatement"
		out.Statements = buildStatements(n.Statements)
	case *marble.Identifier:
		out.Kind = "Identifier"
		out.Name = n.Name
	case *marble.IntegerLiteral:
		out.Kind = "IntegerLiteral"
		v := n.Value
		out.Int = &v
	case *marble.BoolLiteral:
		out.Kind = "BooleanLiteral"
		v := n.Value
		out.Bool = &v
	case *marble.PrefixExpr:
		out.Kind = "PrefixExpression"
		out.Operator = n.Operator
		out.Right = buildExpr(n.Right)
	case *marble.InfixExpr:
		out.Kind = "InfixExpression"
		out.Operator = n.Operator
		out.Left = buildExpr(n.Left)
		out.Right = buildExpr(n.Right)
	case *marble.IfExpr:
		out.Kind = "IfExpression"
		out.Condition = buildExpr(n.Condition)
		out.Consequence = buildBlock(n.Consequence)
		out.Alternative = buildBlock(n.Alternative)
	case *marble.FunctionLiteral:
		out.Kind = "FunctionLiteral"
		for _, param := range n.Params {
			out.Params = append(out.Params, buildTree(param))
		}
		out.Body = buildBlock(n.Body)
	case *marble.CallExpr:
		out.Kind = "CallExpression"
		out.Callee = buildExpr(n.Callee)
		for _, arg := range n.Args {
			out.Args = append(out.Args, buildExpr(arg))
		}
	default:
		out.Kind = fmt.Sprintf("%T", node)
	}
	return out
}

func buildExpr(expr marble.Expression) *treeNode {
	if expr == nil {
		return nil
	}
	return buildTree(expr)
}

func buildBlock(block *marble.BlockStmt) *treeNode {
	if block == nil {
		return nil
	}
	return buildTree(block)
}

func buildStatements(stmts []marble.Statement) []*treeNode {
	out := make([]*treeNode, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, buildTree(stmt))
	}
	return out
}
