package dfxp

import (
	"regexp"
	"strings"
	"unicode"

	"captions/internal/logging"
	"captions/internal/timecode"
	"captions/internal/timedtext"
)

const lineBreak = "\r\n"

var (
	interTagSpace   = regexp.MustCompile(`>[\s\v\p{Z}\x{FEFF}]+<`)
	namespacePrefix = regexp.MustCompile(`(</?)tts?:`)
	residualBreak   = regexp.MustCompile(`<br[^\r\n]*?/>`)
)

func (p *Parser) extractCue(paragraph timedtext.Element, frameRate float64, index int) (Cue, bool) {
	p.rewriteLineBreaks(paragraph, index)

	text := normalizeText(paragraphContent(paragraph))
	if text == "" {
		p.logger.Debug("empty caption paragraph skipped", logging.Int("paragraph", index))
		return Cue{}, false
	}

	cue := Cue{Text: text}
	if begin, present, ok := readTime(paragraph, "begin", frameRate); present && !ok {
		p.warnTimecode(paragraph, index, "begin", "cue starts at 0")
	} else if begin < 0 {
		p.logger.Debug("negative begin clamped", logging.Int("paragraph", index), logging.Float64("begin", begin))
	} else {
		cue.Begin = begin
	}

	if end, present, ok := readTime(paragraph, "end", frameRate); present {
		if ok {
			cue.End = &end
		} else {
			p.warnTimecode(paragraph, index, "end", "cue has no end time")
		}
	} else if dur, present, ok := readTime(paragraph, "dur", frameRate); present {
		if ok {
			end := cue.Begin + dur
			cue.End = &end
		} else {
			p.warnTimecode(paragraph, index, "dur", "cue has no end time")
		}
	}

	if cue.End != nil && *cue.End < cue.Begin {
		logging.WarnWithContext(p.logger, "caption ends before it begins", "cue_end_before_begin",
			logging.Int("paragraph", index),
			logging.Float64("begin", cue.Begin),
			logging.Float64("end", *cue.End),
			logging.String(logging.FieldImpact, "cue has no end time"),
			logging.String(logging.FieldErrorHint, "check begin/end/dur attributes in the source document"),
		)
		cue.End = nil
	}
	return cue, true
}

// rewriteLineBreaks replaces every nested br with a line-break text node.
func (p *Parser) rewriteLineBreaks(paragraph timedtext.Element, index int) {
	for _, br := range paragraph.ElementsByTagName("br").Elements() {
		if err := br.ReplaceWithText(lineBreak); err != nil {
			p.logger.Debug("line break left in place", logging.Int("paragraph", index), logging.Error(err))
		}
	}
}

// paragraphContent returns the first non-empty representation the element offers.
func paragraphContent(paragraph timedtext.Element) string {
	for _, kind := range timedtext.ContentKinds {
		if content, ok := paragraph.Content(kind); ok && content != "" {
			return content
		}
	}
	return ""
}

func normalizeText(raw string) string {
	text := strings.TrimFunc(raw, isSpace)
	text = interTagSpace.ReplaceAllString(text, "><")
	text = namespacePrefix.ReplaceAllString(text, "$1")
	return residualBreak.ReplaceAllString(text, lineBreak)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// readTime converts a timing attribute. present is false when the attribute
// is missing or blank; ok is false when it is present but unreadable.
func readTime(paragraph timedtext.Element, name string, frameRate float64) (value float64, present, ok bool) {
	raw, set := paragraph.Attribute(name)
	if !set || strings.TrimSpace(raw) == "" {
		return 0, false, true
	}
	value, ok = timecode.Seconds(raw, frameRate)
	return value, true, ok
}

func (p *Parser) warnTimecode(paragraph timedtext.Element, index int, attribute, impact string) {
	value, _ := paragraph.Attribute(attribute)
	logging.WarnWithContext(p.logger, "caption timecode unreadable", "timecode_invalid",
		logging.Int("paragraph", index),
		logging.String("attribute", attribute),
		logging.String("value", value),
		logging.String(logging.FieldImpact, impact),
		logging.String(logging.FieldErrorHint, "use clock time (HH:MM:SS.fff), seconds, or a frame count"),
	)
}
