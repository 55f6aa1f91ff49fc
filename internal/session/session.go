// Package session holds the state of one document being recoloured.
package session

import (
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/lottint/internal/colour"
	"github.com/jmylchreest/lottint/internal/fill"
	"github.com/jmylchreest/lottint/internal/lottie"
)

// Session owns the current document, its colour groups and a render
// generation counter that increases every time the document is replaced.
//
// A Session is not safe for concurrent use; it serves one editor.
type Session struct {
	logger     hclog.Logger
	opts       []fill.ApplyOption
	document   lottie.Value
	groups     []fill.Group
	generation int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for state changes.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithApplyOptions sets the options passed to fill.Apply on every recolour.
func WithApplyOptions(opts ...fill.ApplyOption) Option {
	return func(s *Session) {
		s.opts = append(s.opts, opts...)
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the document, rediscovers its colour groups and bumps the
// generation.
func (s *Session) Load(doc lottie.Value) {
	s.document = doc
	s.groups = fill.GroupByColor(fill.Find(doc, nil))
	s.generation++
	s.logger.Debug("document loaded", "groups", len(s.groups), "generation", s.generation)
}

// LoadWith runs load and, if it succeeds, loads the document it returns.
// On error the session is left exactly as it was.
func (s *Session) LoadWith(load func() (lottie.Value, error)) error {
	doc, err := load()
	if err != nil {
		s.logger.Debug("load failed, keeping current document", "error", err)
		return err
	}
	s.Load(doc)
	return nil
}

// Reset drops the document and its groups and bumps the generation.
func (s *Session) Reset() {
	s.document = nil
	s.groups = nil
	s.generation++
	s.logger.Debug("session reset", "generation", s.generation)
}

// Recolor sets every fill of group index to c. It reports false, changing
// nothing, when index does not name a current group or c has fewer than
// three channels.
//
// The group's value becomes c; the document is replaced by a patched copy
// and the generation is bumped. The previous document is not modified.
func (s *Session) Recolor(index int, c colour.Unit) bool {
	if index < 0 || index >= len(s.groups) || s.document == nil {
		s.logger.Debug("recolour ignored, no such group", "index", index, "groups", len(s.groups))
		return false
	}
	if !c.Valid() {
		s.logger.Debug("recolour ignored, colour needs three channels", "index", index, "channels", len(c))
		return false
	}

	previous := s.groups[index]
	s.groups[index] = fill.Group{
		Value:         c.Clone(),
		OriginalValue: previous.OriginalValue,
		Fills:         previous.Fills,
	}
	s.document = fill.Apply(s.document, previous, c, s.opts...)
	s.generation++

	s.logger.Debug("group recoloured",
		"index", index,
		"from", previous.Value.Hex(),
		"to", c.Hex(),
		"fills", len(previous.Fills),
		"generation", s.generation)
	return true
}

// RecolorHex is Recolor with a "#rrggbb" colour. Malformed hex is black.
func (s *Session) RecolorHex(index int, hex string) bool {
	return s.Recolor(index, colour.HexToRGB(hex))
}

// Loaded reports whether the session holds a document.
func (s *Session) Loaded() bool {
	return s.document != nil
}

// Document returns the current document. Documents are replaced, never
// edited, so the returned value stays valid after later recolours.
func (s *Session) Document() lottie.Value {
	return s.document
}

// Groups returns a copy of the current colour groups.
func (s *Session) Groups() []fill.Group {
	out := make([]fill.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = fill.Group{
			Value:         g.Value.Clone(),
			OriginalValue: g.OriginalValue.Clone(),
			Fills:         slices.Clone(g.Fills),
		}
	}
	return out
}

// Fills returns every fill of the current groups.
func (s *Session) Fills() []fill.Fill {
	return fill.Flatten(s.groups)
}

// Generation returns the render generation.
func (s *Session) Generation() int {
	return s.generation
}
