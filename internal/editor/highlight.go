package editor

// Span marks a keyword occupying columns [Start, End).
type Span struct {
	Start int
	End   int
}

// Highlighter colours keywords from a fixed set. A line is scanned once,
// left to right; each identifier-shaped word is looked up in the set.
type Highlighter struct {
	keywords map[string]struct{}
}

func NewHighlighter(keywords []string) *Highlighter {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			set[kw] = struct{}{}
		}
	}
	return &Highlighter{keywords: set}
}

// Spans returns the keyword spans of line in column order.
func (h *Highlighter) Spans(line []rune) []Span {
	if h == nil || len(h.keywords) == 0 {
		return nil
	}
	var spans []Span
	for i := 0; i < len(line); {
		if !isWordRune(line[i]) {
			i++
			continue
		}
		start := i
		for i < len(line) && isWordRune(line[i]) {
			i++
		}
		if _, ok := h.keywords[string(line[start:i])]; ok {
			spans = append(spans, Span{Start: start, End: i})
		}
	}
	return spans
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
