// Package vars holds the typed story variables that actions mutate and
// event/action generation is conditioned on.
package vars

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a variable value.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
)

// Value is a typed variable value: an integer, a boolean, or a string.
type Value struct {
	Kind Kind
	Int  int
	Bool bool
	Str  string
}

func IntValue(i int) Value     { return Value{Kind: KindInt, Int: i} }
func BoolValue(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// String renders the value the way it would appear in a variable line.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// ParseValue converts the raw text of a variable line's value into a typed
// Value. Integers win over booleans, booleans over strings. Surrounding
// double quotes are stripped before any conversion is attempted.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	if n, err := strconv.Atoi(s); err == nil {
		return IntValue(n)
	}
	switch strings.ToLower(s) {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	return StringValue(s)
}

// ParseLine splits a "key: value" line into its trimmed key and typed value.
// A line without a colon is malformed.
func ParseLine(line string) (string, Value, error) {
	key, raw, ok := strings.Cut(line, ":")
	if !ok {
		return "", Value{}, fmt.Errorf("variable line %q: missing ':' separator", line)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", Value{}, fmt.Errorf("variable line %q: empty name", line)
	}
	return key, ParseValue(raw), nil
}

// Store maps variable names to their current typed values. The set of
// tracked names is fixed when the store is parsed; actions can only
// overwrite variables that already exist.
type Store struct {
	values map[string]Value
	order  []string
}

// Parse builds a store from variable lines, skipping blank lines and
// preserving the order names first appear in. A malformed line is a
// configuration error.
func Parse(lines []string) (*Store, error) {
	s := &Store{values: make(map[string]Value)}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, val, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		if _, seen := s.values[key]; !seen {
			s.order = append(s.order, key)
		}
		s.values[key] = val
	}
	return s, nil
}

// Get returns the value for name and whether it is tracked.
func (s *Store) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set overwrites an existing variable. Unknown names are ignored.
func (s *Store) Set(name string, v Value) {
	if _, ok := s.values[name]; ok {
		s.values[name] = v
	}
}

// Apply overwrites every changed variable that the store already tracks.
// Names absent from the store are ignored: an action cannot introduce a
// new tracked variable.
func (s *Store) Apply(changes map[string]Value) {
	for name, v := range changes {
		s.Set(name, v)
	}
}

// Actionable reports whether at least one of the changed names is tracked,
// i.e. whether applying the changes would have any effect.
func (s *Store) Actionable(changes map[string]Value) bool {
	for name := range changes {
		if _, ok := s.values[name]; ok {
			return true
		}
	}
	return false
}

// Names returns the tracked names in first-seen order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Store) Len() int { return len(s.values) }

// Clone returns an independent copy, used to keep action application
// atomic with respect to a failed generator call.
func (s *Store) Clone() *Store {
	c := &Store{
		values: make(map[string]Value, len(s.values)),
		order:  make([]string, len(s.order)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	copy(c.order, s.order)
	return c
}

// Lines renders the store back into "name: value" lines in tracked order,
// the form prompts expect.
func (s *Store) Lines() []string {
	lines := make([]string, 0, len(s.order))
	for _, name := range s.order {
		lines = append(lines, fmt.Sprintf("%s: %s", name, s.values[name]))
	}
	return lines
}
