package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"datamapper/internal/common"
)

// Diagnostics holds every diagnostic reported while working on one mapping session.
// It is safe for concurrent use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
	Debugs   []Diagnostic

	mu     sync.Mutex
	seen   map[string]struct{}
	logger *slog.Logger
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Level of the diagnostic.
	Level Level
	// Scope tells which part of the session the diagnostic belongs to.
	Scope Scope
	// Type classifies the cause.
	Type Type
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description. Diagnostics are de-duplicated by it.
	Message string
	// Ref identifies the mapping id, document id or field path involved (if any).
	Ref string
}

// Level represents the severity of a diagnostic.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the wire name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return common.UnknownStr
	}
}

// SlogLevel maps the level onto log/slog.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Scope is the area a diagnostic applies to.
type Scope string

const (
	ScopeApplication Scope = "APPLICATION"
	ScopeDocument    Scope = "DOCUMENT"
	ScopeMapping     Scope = "MAPPING"
	ScopePreview     Scope = "PREVIEW"
)

// Type classifies what caused a diagnostic.
type Type string

const (
	TypeUser       Type = "USER"
	TypeValidation Type = "VALIDATION"
	TypeInternal   Type = "INTERNAL"
	TypePreview    Type = "PREVIEW"
)

// New returns an empty Diagnostics that also writes every accepted entry to logger.
// A nil logger disables logging.
func New(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// Add records d unless a diagnostic with the same message was already recorded.
// It reports whether d was accepted.
func (d *Diagnostics) Add(diag Diagnostic) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}

	if _, dup := d.seen[diag.Message]; dup {
		return false
	}

	d.seen[diag.Message] = struct{}{}

	switch diag.Level {
	case LevelError:
		d.Errors = append(d.Errors, diag)
	case LevelWarn:
		d.Warnings = append(d.Warnings, diag)
	case LevelInfo:
		d.Infos = append(d.Infos, diag)
	default:
		d.Debugs = append(d.Debugs, diag)
	}

	if d.logger != nil {
		d.logger.Log(context.Background(), diag.Level.SlogLevel(), diag.Message,
			"scope", string(diag.Scope),
			"type", string(diag.Type),
			"code", diag.Code,
			"ref", diag.Ref,
		)
	}

	return true
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(scope Scope, code, message, ref string) {
	d.Add(Diagnostic{Level: LevelError, Scope: scope, Type: TypeValidation, Code: code, Message: message, Ref: ref})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(scope Scope, code, message, ref string) {
	d.Add(Diagnostic{Level: LevelWarn, Scope: scope, Type: TypeUser, Code: code, Message: message, Ref: ref})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(scope Scope, code, message, ref string) {
	d.Add(Diagnostic{Level: LevelInfo, Scope: scope, Type: TypeUser, Code: code, Message: message, Ref: ref})
}

// AddDebug adds a debug diagnostic.
func (d *Diagnostics) AddDebug(scope Scope, code, message, ref string) {
	d.Add(Diagnostic{Level: LevelDebug, Scope: scope, Type: TypeInternal, Code: code, Message: message, Ref: ref})
}

// AddAudit translates one validation audit returned by the mapping runtime.
// Audit statuses are ERROR, WARN, INFO and ALL; anything unknown is reported as INFO.
func (d *Diagnostics) AddAudit(status, message, path string) {
	level := LevelInfo

	switch strings.ToUpper(status) {
	case "ERROR":
		level = LevelError
	case "WARN", "WARNING":
		level = LevelWarn
	case "DEBUG":
		level = LevelDebug
	}

	d.Add(Diagnostic{Level: level, Scope: ScopeMapping, Type: TypeValidation, Code: "audit", Message: message, Ref: path})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// All returns every diagnostic, most severe first.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos)+len(d.Debugs))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)
	out = append(out, d.Debugs...)

	return out
}

// Merge merges another Diagnostics instance into this one, keeping de-duplication.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	for _, diag := range other.All() {
		d.Add(diag)
	}
}

// Clear drops all recorded diagnostics.
func (d *Diagnostics) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Errors, d.Warnings, d.Infos, d.Debugs = nil, nil, nil, nil
	d.seen = nil
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Scope != "" {
		prefix = append(prefix, "["+string(d.Scope)+"]")
	}

	if d.Ref != "" {
		prefix = append(prefix, d.Ref)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
