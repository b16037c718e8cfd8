package inline

import (
	"strings"

	"github.com/npillmayer/vizbox/boxtree"
	"github.com/npillmayer/vizbox/core/font"
)

// AppendText segments text per spec.md §4.3's text-shaping step and
// appends the resulting glyphs (and LineBreak markers) to ifc. sf is the
// already-resolved font for the owning element; tabSize is the number of
// space glyphs a `\t` expands to.
func AppendText(ifc *boxtree.IFC, sf *font.ShapingFont, text string, tabSize int) {
	flush := func(run []rune) {
		if len(run) == 0 {
			return
		}
		for _, g := range Shape(sf, run) {
			ifc.PushGlyph(g.GID)
		}
	}
	var run []rune
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\n':
			flush(run)
			run = nil
			ifc.PushLineBreak()
		case '\r':
			flush(run)
			run = nil
			ifc.PushLineBreak()
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++ // \r\n counts as one break
			}
		case '\t':
			flush(run)
			run = nil
			flush([]rune(strings.Repeat(" ", tabSize)))
		default:
			run = append(run, runes[i])
		}
	}
	flush(run)
}
