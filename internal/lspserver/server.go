// Package lspserver implements a minimal Language Server Protocol
// server that republishes this repository's syntax diagnostics over
// LSP. It intentionally implements nothing beyond textDocument sync
// and diagnostics: no completion, hover, or go-to-definition, since
// the core this server fronts has no semantic model to drive them
// (no duplicate-key detection, no typed values, no document tree).
package lspserver

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/aledsdavies/tomlfront/internal/checker"
	"github.com/aledsdavies/tomlfront/pkgs/document"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Server is a stdio-transport LSP server. One Server instance serves
// one client connection for the process lifetime.
type Server struct {
	conn   jsonrpc2.Conn
	client protocol.Client
	logger *log.Logger

	capabilities protocol.ServerCapabilities

	mu   sync.Mutex
	docs map[string]string // uri -> current text

	cancel context.CancelFunc
}

// NewServer builds a Server advertising full-document sync and
// diagnostics only.
func NewServer() *Server {
	return &Server{
		logger: log.New(os.Stderr, "[tomllsp] ", log.LstdFlags),
		docs:   make(map[string]string),
		capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
	}
}

// Run starts serving over stdin/stdout until ctx is canceled or the
// client sends exit.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("starting")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	s.client = protocol.ClientDispatcher(conn, zapLogger)

	conn.Go(ctx, s.handler())

	<-ctx.Done()
	s.logger.Println("shutting down")
	return conn.Close()
}

func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized:
			return reply(ctx, nil, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			return s.handleExit(ctx, reply)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleDidClose(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "failed to parse initialize params"})
	}

	result := protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    "tomllsp",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier) error {
	if err := reply(ctx, nil, nil); err != nil {
		s.logger.Printf("error replying to exit: %v", err)
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "failed to parse didOpen params"})
	}

	uri := string(params.TextDocument.URI)
	s.setDocument(uri, params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "failed to parse didChange params"})
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	uri := string(params.TextDocument.URI)
	// Full document sync only: the last change event carries the
	// entire new text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.setDocument(uri, text)
	s.publishDiagnostics(ctx, uri)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "failed to parse didClose params"})
	}

	uri := string(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
	return reply(ctx, nil, nil)
}

func (s *Server) setDocument(uri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

// publishDiagnostics re-checks uri's current text and sends the
// resulting syntax diagnostics to the client. It never reports
// anything beyond what checker.Check produces: no duplicate-key or
// type diagnostics exist to publish.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	s.mu.Lock()
	text, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return
	}

	doc := document.New(text)
	errs := checker.Check(doc)

	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		diagnostics = append(diagnostics, toLSPDiagnostic(doc, e))
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Printf("error publishing diagnostics: %v", err)
	}
}

// stdrwc adapts stdin/stdout to io.ReadWriteCloser for the JSON-RPC
// stream.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
