// Package engine dispatches parsed command lines to privilege-gated
// handlers. Each handler validates its arguments, runs one read-modify-write
// cycle against the record store, and either returns output text or a
// classed rejection; the run loop prints the uniform failure marker for any
// rejection and appends one audit entry per processed line.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pagecroft/bookstore/internal/session"
	"github.com/pagecroft/bookstore/pkg/types"
)

// RejectedMarker is the single output line emitted for any rejected
// command, regardless of rejection class.
const RejectedMarker = "Invalid"

// Engine processes one command line at a time against a record store and a
// session stack. Not safe for concurrent use; command processing is
// strictly sequential and each line completes (audit append included)
// before the next is read.
type Engine struct {
	store    types.Store
	sessions *session.Stack
	log      *slog.Logger
}

// New creates an Engine. A nil sessions stack starts empty; a nil logger
// discards.
func New(store types.Store, sessions *session.Stack, logger *slog.Logger) *Engine {
	if sessions == nil {
		sessions = session.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{store: store, sessions: sessions, log: logger}
}

// Sessions exposes the login stack for inspection in tests.
func (e *Engine) Sessions() *session.Stack {
	return e.sessions
}

// Run reads input lines until EOF or a quit/exit command. Blank lines are
// skipped silently. Every other line produces either its command output or
// the rejection marker on w, plus one audit entry.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := e.Process(line, w); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Process handles one non-blank trimmed line. It reports true when the line
// is a quit/exit command, which terminates processing with no output and no
// audit entry.
func (e *Engine) Process(line string, w io.Writer) bool {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return false
	}
	if tokens[0] == "quit" || tokens[0] == "exit" {
		return true
	}

	output, err := e.dispatch(tokens)
	if err != nil {
		e.log.Debug("command rejected", "command", tokens[0], "class", class(err), "err", err)
		fmt.Fprintln(w, RejectedMarker)
	} else if output != "" {
		io.WriteString(w, output)
	}

	// The audit actor is the stack top after the command ran: su lines are
	// attributed to the new identity, logout lines to the restored one.
	audit := types.AuditEntry{Actor: e.sessions.Actor(), Command: line}
	if err := e.store.AppendAudit(audit); err != nil {
		e.log.Warn("audit append failed", "actor", audit.Actor, "err", err)
	}
	return false
}

// dispatch routes tokens to the handler for the command name. Unknown
// commands are malformed.
func (e *Engine) dispatch(tokens []string) (string, error) {
	switch tokens[0] {
	case "su":
		return "", e.su(tokens)
	case "logout":
		return "", e.logout()
	case "register":
		return "", e.register(tokens)
	case "passwd":
		return "", e.passwd(tokens)
	case "useradd":
		return "", e.useradd(tokens)
	case "delete":
		return "", e.deleteUser(tokens)
	case "show":
		if len(tokens) >= 2 && tokens[1] == "finance" {
			return e.showFinance(tokens)
		}
		return e.showBooks(tokens)
	case "buy":
		return e.buy(tokens)
	case "select":
		return "", e.selectBook(tokens)
	case "modify":
		return "", e.modify(tokens)
	case "import":
		return "", e.importStock(tokens)
	case "log":
		return e.auditLog()
	case "report":
		return e.report(tokens)
	}
	return "", fmt.Errorf("%w: unknown command %q", ErrMalformed, tokens[0])
}

// require rejects when the effective session privilege is below need.
func (e *Engine) require(need int) error {
	if e.sessions.Privilege() < need {
		return fmt.Errorf("%w: need privilege %d", ErrDenied, need)
	}
	return nil
}
