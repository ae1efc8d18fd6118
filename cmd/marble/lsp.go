package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mgomes/marblescript/marble"
	"github.com/spf13/cobra"
)

const (
	lspErrInvalidParams  = -32602
	lspErrMethodNotFound = -32601

	lspKindKeyword   = 14
	lspSeverityError = 1
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position lspPosition `json:"position"`
}

type lspPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start lspPosition `json:"start"`
	End   lspPosition `json:"end"`
}

type lspDiagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	log    *slog.Logger
	docs   map[string]string
}

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newLSPServer(a.in, a.out, a.log).serve()
		},
	}
}

func newLSPServer(in io.Reader, out io.Writer, logger *slog.Logger) *lspServer {
	return &lspServer{
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
		log:    logger,
		docs:   make(map[string]string),
	}
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.log.Debug("dropping malformed message", "error", err)
			continue
		}
		s.log.Debug("lsp request", "method", incoming.Method)

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{{
			JSONRPC: "2.0",
			ID:      incoming.ID,
			Result: map[string]any{
				"capabilities": map[string]any{
					"textDocumentSync": 1,
					"hoverProvider":    true,
					"completionProvider": map[string]any{
						"resolveProvider": false,
					},
				},
				"serverInfo": map[string]any{"name": "marble-lsp", "version": version},
			},
		}}
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID}}
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text)}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil || len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{s.publishDiagnostics(params.TextDocument.URI, latest)}
	case "textDocument/didClose":
		var params lspDidCloseParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{
			JSONRPC: "2.0",
			ID:      incoming.ID,
			Result: map[string]any{
				"isIncomplete": false,
				"items":        completionItems(),
			},
		}}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error:   &lspResponseError{Code: lspErrInvalidParams, Message: "invalid hover params"},
			}}
		}
		tok, ok := tokenAtPosition(s.docs[params.TextDocument.URI], params.Position)
		if !ok {
			return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID}}
		}
		return []lspOutboundMessage{{
			JSONRPC: "2.0",
			ID:      incoming.ID,
			Result: map[string]any{
				"contents": map[string]any{
					"kind":  "markdown",
					"value": fmt.Sprintf("`%s`\n\nMarble %s", tok.Literal, describeToken(tok)),
				},
			},
		}}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{
			JSONRPC: "2.0",
			ID:      incoming.ID,
			Error:   &lspResponseError{Code: lspErrMethodNotFound, Message: "method not found"},
		}}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(source),
		},
	}
}

func diagnosticsForSource(source string) []lspDiagnostic {
	p := marble.NewParser(marble.NewLexer(source))
	p.ParseProgram()

	out := make([]lspDiagnostic, 0)
	for _, err := range p.Errors() {
		var parseErr *marble.ParseError
		if !errors.As(err, &parseErr) {
			out = append(out, newDiagnostic(lspPosition{}, err.Error()))
			continue
		}
		start := lspPosition{
			Line:      max(0, parseErr.Pos.Line-1),
			Character: max(0, parseErr.Pos.Column-1),
		}
		out = append(out, newDiagnostic(start, parseErr.Msg))
	}
	return out
}

func newDiagnostic(start lspPosition, message string) lspDiagnostic {
	return lspDiagnostic{
		Range: lspRange{
			Start: start,
			End:   lspPosition{Line: start.Line, Character: start.Character + 1},
		},
		Severity: lspSeverityError,
		Source:   "marble-lsp",
		Message:  message,
	}
}

func completionItems() []map[string]any {
	words := marble.Keywords()
	items := make([]map[string]any, 0, len(words))
	for _, word := range words {
		items = append(items, map[string]any{
			"label":  word,
			"kind":   lspKindKeyword,
			"detail": "keyword",
		})
	}
	return items
}

// tokenAtPosition finds the token covering an LSP (0-based) position.
func tokenAtPosition(source string, pos lspPosition) (marble.Token, bool) {
	line, column := pos.Line+1, pos.Character+1
	for _, tok := range marble.Tokenize(source) {
		if tok.Type == marble.TokenEOF || tok.Pos.Line != line {
			continue
		}
		width := utf8.RuneCountInString(tok.Literal)
		if column >= tok.Pos.Column && column < tok.Pos.Column+width {
			return tok, true
		}
	}
	return marble.Token{}, false
}

func describeToken(tok marble.Token) string {
	switch tok.Type {
	case marble.TokenIdent:
		return "identifier"
	case marble.TokenInt:
		return "integer literal"
	case marble.TokenIllegal:
		return "illegal character"
	}
	if marble.LookupIdent(tok.Literal) != marble.TokenIdent {
		return "keyword"
	}
	return "operator"
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
