package parfile

import (
	"bufio"
	"bytes"
	"strings"
)

// Parse reads a parameter file.  Blank lines and lines starting with '#' or
// ';' carry no data and are kept as comments of the next section or entry; an
// indented line directly after an entry continues that entry's value.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	var (
		current *Section
		last    *Entry
		lineNo  int
		pending []string
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			last = nil
			pending = append(pending, "")
			continue
		}
		if text[0] == '#' || text[0] == ';' {
			pending = append(pending, text)
			continue
		}
		if last != nil && isIndented(raw) {
			if last.Value == "" {
				last.Value = text
			} else {
				last.Value += "\n" + text
			}
			continue
		}
		last = nil

		if text[0] == '[' {
			name, ok := sectionName(text)
			if !ok {
				return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrMalformedLine}
			}
			if doc.Section(name) != nil {
				return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrDuplicateSection}
			}
			current = doc.AddSection(name)
			current.Comments, pending = pending, nil
			continue
		}

		idx := strings.IndexAny(text, "=:")
		if idx <= 0 {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrMalformedLine}
		}
		if current == nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrMissingSection}
		}
		key := strings.TrimSpace(text[:idx])
		value := strings.TrimSpace(text[idx+1:])
		if current.entry(key) != nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrDuplicateKey}
		}
		last = &Entry{Key: key, Value: value, Line: lineNo, Comments: pending}
		pending = nil
		current.Entries = append(current.Entries, last)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	doc.Trailer = pending
	return doc, nil
}

func isIndented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func sectionName(text string) (string, bool) {
	if !strings.HasSuffix(text, "]") {
		return "", false
	}
	name := strings.TrimSpace(text[1 : len(text)-1])
	return name, name != ""
}
