package extraction

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extract segments the input text and runs the policy for its layout tag.
func (e *Engine) Extract(in Input) Result {
	text := norm.NFC.String(in.Text)
	if strings.TrimSpace(text) == "" {
		return EmptyResult()
	}
	return e.Dispatch(Segment(text), text, ParseLayout(in.Layout), in.OCR)
}

// Dispatch composes the title assembler, field extractors and validator
// according to layout.
func (e *Engine) Dispatch(seg Segmentation, text string, layout Layout, meta *Metadata) Result {
	if strings.TrimSpace(text) == "" {
		return EmptyResult()
	}
	lines := seg.Lines

	e.logger.Debug("Dispatching extraction",
		"layout", layout.String(),
		"line_count", len(lines),
		"raw_line_count", seg.RawLineCount,
		"strategy", seg.Strategy.String(),
		"has_heights", meta.usable())

	var result Result
	switch layout {
	case AuthorFirst:
		result = e.authorFirst(lines, text, meta)
	case TitleOnly:
		result = e.titleOnly(lines, text, meta)
	case FullInfo:
		result = e.fullInfo(lines, text)
	default:
		if seg.RawLineCount == 1 || len(lines) == 1 {
			result = e.patternOnly(lines, text)
		} else {
			result = e.standard(lines, text, meta)
		}
	}

	e.logger.Debug("Extraction complete",
		"layout", result.Layout,
		"title", result.Title,
		"author", result.Author,
		"publisher", result.Publisher,
		"year", result.Year,
		"isbn", result.ISBN)
	return result
}

func (e *Engine) standard(lines []string, text string, meta *Metadata) Result {
	return Result{
		Title:     e.AssembleTitle(lines, meta),
		Author:    e.FindAuthor(lines, text),
		Publisher: e.FindPublisher(lines, text),
		Year:      FindYear(text),
		ISBN:      FindIsbn(text),
		Layout:    Standard.String(),
	}
}

// patternOnly handles a cover that arrived as a single OCR blob, where line
// order carries no meaning.
func (e *Engine) patternOnly(lines []string, text string) Result {
	return Result{
		Title:     FindTitle(text),
		Author:    e.FindAuthor(lines, text),
		Publisher: e.FindPublisher(lines, text),
		Year:      FindYear(text),
		ISBN:      FindIsbn(text),
		Layout:    TagStandardPattern,
	}
}

func (e *Engine) authorFirst(lines []string, text string, meta *Metadata) Result {
	var author string
	rest := lines
	if len(lines) > 0 {
		author = strings.TrimSpace(lines[0])
		rest = lines[1:]
	}

	title := e.AssembleTitle(rest, shiftHeights(meta))
	if title == "" {
		title = e.PositionalLine(lines, 1)
	}
	publisher := e.FindPublisher(lines, text)
	if publisher == "" {
		publisher = e.PositionalLine(lines, 2)
	}

	return Result{
		Title:     title,
		Author:    author,
		Publisher: publisher,
		Year:      FindYear(text),
		ISBN:      FindIsbn(text),
		Layout:    AuthorFirst.String(),
	}
}

func (e *Engine) titleOnly(lines []string, text string, meta *Metadata) Result {
	return Result{
		Title:     e.AssembleTitle(lines, meta),
		Author:    e.FindAuthor(lines, text),
		Publisher: e.FindPublisher(lines, text),
		Year:      FindYear(text),
		ISBN:      FindIsbn(text),
		Layout:    TitleOnly.String(),
	}
}

func (e *Engine) fullInfo(lines []string, text string) Result {
	pick := func(index int, fallback func() string) string {
		if v := e.PositionalLine(lines, index); v != "" {
			return v
		}
		return fallback()
	}
	return Result{
		Title:     pick(0, func() string { return FindTitle(text) }),
		Author:    pick(1, func() string { return e.FindAuthor(lines, text) }),
		Publisher: pick(2, func() string { return e.FindPublisher(lines, text) }),
		Year:      pick(3, func() string { return FindYear(text) }),
		ISBN:      pick(4, func() string { return FindIsbn(text) }),
		Layout:    FullInfo.String(),
	}
}

// shiftHeights drops the first height so the metadata stays aligned with
// lines[1:].
func shiftHeights(meta *Metadata) *Metadata {
	if meta == nil || len(meta.LineHeights) == 0 {
		return meta
	}
	return &Metadata{
		LineHeights: meta.LineHeights[1:],
		MaxHeight:   meta.MaxHeight,
	}
}
