package extraction

import "strings"

// AssembleTitle merges one or more lines into a title. Glyph heights are
// the stronger signal and are used whenever they are present; otherwise
// consecutive ALL-CAPS lines are taken as the title.
func (e *Engine) AssembleTitle(lines []string, meta *Metadata) string {
	if meta.usable() {
		if title := e.titleByHeight(lines, meta); title != "" {
			e.logger.Debug("Assembled title from glyph heights", "title", title, "max_height", meta.MaxHeight)
			return title
		}
	}
	title := e.titleByCase(lines)
	e.logger.Debug("Assembled title from typography", "title", title)
	return title
}

// titleByHeight collects the first contiguous block of lines whose height
// reaches the threshold. Larger type is assumed to precede smaller type, so
// the block ends at the first shorter line.
func (e *Engine) titleByHeight(lines []string, meta *Metadata) string {
	threshold := meta.MaxHeight * e.cfg.HeightRatio
	n := min(len(lines), len(meta.LineHeights))

	var parts []string
	for i := 0; i < n; i++ {
		line := strings.TrimSpace(lines[i])
		if runeLen(line) < 2 || e.isNoise(line) {
			continue
		}
		if meta.LineHeights[i] >= threshold {
			parts = append(parts, line)
			continue
		}
		if len(parts) > 0 {
			break
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (e *Engine) titleByCase(lines []string) string {
	var parts []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if runeLen(line) < 3 || e.isNoise(line) {
			continue
		}
		if isAllCaps(line) {
			parts = append(parts, line)
			continue
		}
		if len(parts) > 0 {
			// A Title-Case line after the title is usually the author.
			if isTitleCase(line) {
				break
			}
			continue
		}
		if runeLen(line) >= 5 {
			parts = append(parts, line)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0])
	}
	return ""
}
