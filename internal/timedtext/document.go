package timedtext

// ContentKind selects one representation of an element's content.
type ContentKind int

const (
	// InnerMarkup is the serialized markup of the element's children.
	InnerMarkup ContentKind = iota
	// TextContent is the concatenated character data of all descendants.
	TextContent
	// PlainText is a legacy plain-text rendering some document models expose.
	PlainText
)

// ContentKinds lists representations in the order callers should prefer them.
var ContentKinds = []ContentKind{InnerMarkup, TextContent, PlainText}

func (k ContentKind) String() string {
	switch k {
	case InnerMarkup:
		return "inner_markup"
	case TextContent:
		return "text_content"
	case PlainText:
		return "plain_text"
	default:
		return "unknown"
	}
}

// Document is a queryable timed-text document.
type Document interface {
	// Root returns the top-level element, or nil when the document is empty.
	Root() Element
	// ElementsByTagName returns every element with the given qualified name in
	// document order.
	ElementsByTagName(name string) Lookup
}

// Element is one element of a timed-text document.
type Element interface {
	Name() string
	// Attribute returns the value of the named attribute and whether it is set.
	Attribute(name string) (string, bool)
	// ElementsByTagName returns matching descendants in document order.
	ElementsByTagName(name string) Lookup
	// ReplaceWithText swaps the element for a text node inside its parent.
	ReplaceWithText(text string) error
	// Content returns the requested representation, or false when the
	// implementation does not support it.
	Content(kind ContentKind) (string, bool)
}

// Lookup is the result of a tag-name query. A supported query may still
// match nothing; an unsupported one means the document could not answer.
type Lookup struct {
	elements  []Element
	supported bool
}

// Found wraps the elements returned by a supported query.
func Found(elements []Element) Lookup {
	return Lookup{elements: elements, supported: true}
}

// Unsupported reports that a document cannot answer tag-name queries.
func Unsupported() Lookup {
	return Lookup{}
}

// Supported reports whether the query could be answered.
func (l Lookup) Supported() bool { return l.supported }

// Len returns the number of matched elements.
func (l Lookup) Len() int { return len(l.elements) }

// Elements returns the matched elements in document order.
func (l Lookup) Elements() []Element {
	if len(l.elements) == 0 {
		return nil
	}
	out := make([]Element, len(l.elements))
	copy(out, l.elements)
	return out
}
