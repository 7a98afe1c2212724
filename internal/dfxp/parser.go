package dfxp

import (
	"log/slog"

	"captions/internal/logging"
	"captions/internal/timecode"
	"captions/internal/timedtext"
)

const frameRateAttribute = "ttp:frameRate"

// Root timing element spellings, in lookup order.
var rootTagNames = []string{"tt", "tt:tt"}

// Paragraph spellings, in lookup order. Producers prefix inconsistently, so
// the first spelling with at least one match is used.
var paragraphTagNames = []string{"p", "tt:p", "tts:p"}

// Options configures a Parser.
type Options struct {
	// Logger receives fallback diagnostics. Nil disables logging.
	Logger *slog.Logger
	// PreserveSource parses a clone when the document is a *timedtext.Tree,
	// leaving the caller's tree untouched.
	PreserveSource bool
}

// Parser converts timed-text documents into cues.
type Parser struct {
	logger         *slog.Logger
	preserveSource bool
}

// NewParser constructs a Parser.
func NewParser(opts Options) *Parser {
	return &Parser{
		logger:         logging.NewComponentLogger(opts.Logger, "dfxp"),
		preserveSource: opts.PreserveSource,
	}
}

// Parse converts doc with default options.
func Parse(doc timedtext.Document) ([]Cue, error) {
	return NewParser(Options{}).Parse(doc)
}

// Parse converts doc into cues in document order.
func (p *Parser) Parse(doc timedtext.Document) ([]Cue, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	if p.preserveSource {
		if tree, ok := doc.(*timedtext.Tree); ok {
			doc = tree.Clone()
		}
	}

	frameRate := p.resolveFrameRate(doc)

	paragraphs, err := p.locateParagraphs(doc)
	if err != nil {
		return nil, err
	}

	cues := make([]Cue, 0, len(paragraphs))
	for i, paragraph := range paragraphs {
		cue, ok := p.extractCue(paragraph, frameRate, i)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	if len(cues) == 0 {
		return nil, parseError(CodeNoUsableCaptions)
	}

	p.logger.Debug("captions parsed",
		logging.Int("paragraphs", len(paragraphs)),
		logging.Int("cues", len(cues)),
		logging.Float64("frame_rate", frameRate),
	)
	return cues, nil
}

func validateDocument(doc timedtext.Document) error {
	if doc == nil || doc.Root() == nil {
		return parseError(CodeMissingDocument)
	}
	return nil
}

// resolveFrameRate reads ttp:frameRate from the first root timing element.
// Absent or unreadable values fall back to the default.
func (p *Parser) resolveFrameRate(doc timedtext.Document) float64 {
	for _, name := range rootTagNames {
		roots := doc.ElementsByTagName(name)
		if roots.Len() == 0 {
			continue
		}
		value, ok := roots.Elements()[0].Attribute(frameRateAttribute)
		if !ok {
			break
		}
		rate := timecode.FrameRate(value)
		if rate != timecode.ParseFloatPrefix(value) {
			p.logger.Debug("frame rate unreadable; using default",
				logging.String("value", value),
				logging.Float64("frame_rate", rate),
			)
		}
		return rate
	}
	return timecode.DefaultFrameRate
}

func (p *Parser) locateParagraphs(doc timedtext.Document) ([]timedtext.Element, error) {
	lookup := doc.ElementsByTagName(paragraphTagNames[0])
	if !lookup.Supported() {
		return nil, parseError(CodeNoUsableCaptions)
	}
	for _, alias := range paragraphTagNames[1:] {
		if lookup.Len() > 0 {
			break
		}
		lookup = doc.ElementsByTagName(alias)
	}
	return lookup.Elements(), nil
}
