package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgomes/marblescript/marble"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	var withPos bool
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a source file",
		Long: `Lexes a source file (or standard input when no file or "-" is given)
and prints one token per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readSource(args)
			if err != nil {
				return err
			}
			toks := marble.Tokenize(source)
			a.log.Debug("lexed source", "file", name, "tokens", len(toks))
			return writeTokens(a.out, toks, withPos)
		},
	}
	cmd.Flags().BoolVar(&withPos, "pos", false, "prefix each token with its line:column")
	return cmd
}

func writeTokens(w io.Writer, toks []marble.Token, withPos bool) error {
	for _, tok := range toks {
		if tok.Type == marble.TokenEOF {
			break
		}
		line := formatToken(tok)
		if withPos {
			line = fmt.Sprintf("%d:%d %s", tok.Pos.Line, tok.Pos.Column, line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatToken(tok marble.Token) string {
	return fmt.Sprintf("{ Type: %s, Literal: %s }", tok.Type, tok.Literal)
}

func formatTokenStream(source string) string {
	toks := marble.Tokenize(source)
	lines := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == marble.TokenEOF {
			break
		}
		lines = append(lines, formatToken(tok))
	}
	return strings.Join(lines, "\n")
}
