package printer

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/cwbudde/symdecode/internal/ast"
)

// Builder implements ast.Printer, accumulating the textual projection of a
// decoded symbol the way the teacher's pkg/printer.Printer accumulates
// formatted DWScript source: construct with New, then Print a node.
type Builder struct {
	opts    Options
	out     strings.Builder
	decoder *charmap.Charmap
}

// New constructs a Builder configured by opts.
func New(opts Options) *Builder {
	return &Builder{opts: opts, decoder: charmap.Windows1252}
}

// Print renders n and returns the accumulated text. The Builder is reset
// first so a single instance can be reused across symbols.
func (b *Builder) Print(n ast.Node) string {
	b.out.Reset()
	n.DisplayOn(b, ast.SpacingNone)
	return b.out.String()
}

// Print is a convenience wrapper mirroring the teacher's package-level
// printer.Print(program) helper for default-options rendering.
func Print(n ast.Node) string {
	return New(NewOptions()).Print(n)
}

// WriteString decodes any HighAnsi (0x80-0xFE) bytes in s through the
// Windows-1252 code page before appending it: identifier bytes the
// tokeniser classified HighAnsi are never valid UTF-8 on their own, and
// the source toolchain treats them as a single-byte Windows code page.
func (b *Builder) WriteString(s string) {
	if isASCII(s) {
		b.out.WriteString(s)
		return
	}
	decoded, err := b.decoder.NewDecoder().String(s)
	if err != nil {
		b.out.WriteString(s)
		return
	}
	b.out.WriteString(decoded)
}

func (b *Builder) WriteSpace(spacing ast.Spacing) {
	if spacing.HasLeading() || spacing.HasTrailing() {
		b.out.WriteString(" ")
	}
}

func (b *Builder) Flag(f ast.DisplayFlag) bool { return b.opts.has(f) }

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
