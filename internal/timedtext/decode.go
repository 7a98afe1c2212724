package timedtext

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const prologPeekBytes = 512

var xmlEncodingPattern = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

var byteOrderMarks = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

// Decode returns a UTF-8 view of a timed-text document. A byte-order mark
// wins over the XML declaration; documents with neither are read as UTF-8.
func Decode(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, prologPeekBytes)
	head, err := br.Peek(prologPeekBytes)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read prolog: %w", err)
	}

	if hasByteOrderMark(head) {
		return transform.NewReader(br, unicode.BOMOverride(transform.Nop)), nil
	}

	if m := xmlEncodingPattern.FindSubmatch(head); m != nil {
		label := strings.ToLower(string(m[1]))
		if label == "utf-8" || label == "utf8" {
			return br, nil
		}
		decoded, err := charset.NewReaderLabel(label, br)
		if err != nil {
			return nil, fmt.Errorf("decode %s document: %w", label, err)
		}
		return decoded, nil
	}
	return br, nil
}

// ParseEncoded decodes r and parses the result.
func ParseEncoded(r io.Reader) (*Tree, error) {
	decoded, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Parse(decoded)
}

func hasByteOrderMark(head []byte) bool {
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(head, bom) {
			return true
		}
	}
	return false
}
