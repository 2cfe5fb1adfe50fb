// Copyright © 2025 The declnav authors

package syntax

import "fmt"

// Location identifies a position in a source file. Line and Col start at 1
// when tracked; a zero Location means the position is unknown.
type Location struct {
	File   string
	Line   int
	Col    int
	Offset int

	// Expansion is non-nil when the token at this location was produced by
	// a macro. It points at the macro's expansion point in the originating
	// file. Several names produced by one expansion share the same
	// expansion point.
	Expansion *Location
}

// IsValid reports whether the location carries position information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// Spelled resolves macro-expanded positions to the expansion point in the
// originating file. Locations outside any macro are returned unchanged.
func (l Location) Spelled() Location {
	for l.Expansion != nil {
		l = *l.Expansion
	}
	return l
}

// Before orders locations within a file by offset, falling back to
// line/column when offsets are not tracked.
func (l Location) Before(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Offset != o.Offset {
		return l.Offset < o.Offset
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Col < o.Col
}

func (l Location) String() string {
	switch {
	case l.File == "" && !l.IsValid():
		return "-"
	case !l.IsValid():
		return l.File
	case l.Col == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
	}
}
