package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Binding is one declared variable.
type Binding struct {
	Name     string
	Value    string
	HasValue bool // false for "#i haz x" without "#it iz"
	Line     int  // line of the declaration
}

// ScopeFrame maps variable names to bindings. Names are unique within a frame.
type ScopeFrame map[string]Binding

// ScopeStack is the analyzer's view of nested scopes.
// frames[0] is the global frame and is never popped.
type ScopeStack struct {
	frames []ScopeFrame
}

func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []ScopeFrame{make(ScopeFrame)}}
}

// Push opens a new innermost frame. Only paragraphs introduce scope.
func (s *ScopeStack) Push() {
	s.frames = append(s.frames, make(ScopeFrame))
}

// Pop discards the innermost frame. The global frame stays.
func (s *ScopeStack) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth is the number of frames, global included.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Declare inserts b into the innermost frame. If the name is already bound in
// that frame, the earlier binding is returned with ok=false and nothing changes.
func (s *ScopeStack) Declare(b Binding) (Binding, bool) {
	current := s.frames[len(s.frames)-1]
	if prev, exists := current[b.Name]; exists {
		return prev, false
	}
	current[b.Name] = b
	return b, true
}

// Lookup searches frames from innermost to outermost.
func (s *ScopeStack) Lookup(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Visible returns every name reachable from the innermost frame, sorted.
func (s *ScopeStack) Visible() []string {
	seen := make(map[string]bool)
	var names []string
	for _, frame := range s.frames {
		for name := range frame {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// String returns a deterministically ordered dump of the stack.
func (s *ScopeStack) String() string {
	var sb strings.Builder
	for i, frame := range s.frames {
		if i == 0 {
			sb.WriteString("Global:\n")
		} else {
			fmt.Fprintf(&sb, "Scope %d:\n", i)
		}
		if len(frame) == 0 {
			sb.WriteString("  (empty)\n")
			continue
		}
		names := make([]string, 0, len(frame))
		for name := range frame {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b := frame[name]
			value := "<unset>"
			if b.HasValue {
				value = fmt.Sprintf("%q", b.Value)
			}
			fmt.Fprintf(&sb, "  %-20s  %s (line %d)\n", name, value, b.Line)
		}
	}
	return sb.String()
}
