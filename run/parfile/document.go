package parfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is a single key = value line.  Line is 0 for entries that were added
// programmatically.  Comments holds the comment and blank lines directly
// above the entry, trimmed, blank lines as "".
type Entry struct {
	Key      string
	Value    string
	Line     int
	Comments []string
}

// Section groups the entries that follow a [Name] header, in file order.
type Section struct {
	Name     string
	Entries  []*Entry
	Comments []string
}

// Document is a parsed parameter file.  Trailer holds the comment and blank
// lines after the last entry.
type Document struct {
	Sections []*Section
	Trailer  []string
}

func foldKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Section returns the section with the given name or nil.  Section names are
// case-sensitive.
func (d *Document) Section(name string) *Section {
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AddSection returns the named section, appending an empty one when absent.
func (d *Document) AddSection(name string) *Section {
	if s := d.Section(name); s != nil {
		return s
	}
	s := &Section{Name: name}
	d.Sections = append(d.Sections, s)
	return s
}

func (s *Section) entry(key string) *Entry {
	folded := foldKey(key)
	for _, e := range s.Entries {
		if foldKey(e.Key) == folded {
			return e
		}
	}
	return nil
}

// Get returns the raw value for key.  Keys match case-insensitively.
func (s *Section) Get(key string) (string, bool) {
	if e := s.entry(key); e != nil {
		return e.Value, true
	}
	return "", false
}

// Set updates key in place, or appends it when absent.  The original spelling
// of an existing key is preserved.  Pairs that would not read back unchanged
// are rejected with ErrUnencodable.
func (s *Section) Set(key, value string) error {
	if err := CheckEntry(key, value); err != nil {
		return err
	}
	if e := s.entry(key); e != nil {
		e.Value = value
		return nil
	}
	s.Entries = append(s.Entries, &Entry{Key: key, Value: value})
	return nil
}

// CheckEntry reports whether key and value survive Encode followed by Parse.
// A key must be trimmed, non-empty and free of delimiters.  A value must be
// trimmed; in a multi-line value every line must be trimmed and non-empty, and
// lines after the first must not start with a comment marker.
func CheckEntry(key, value string) error {
	if key == "" || key != strings.TrimSpace(key) || strings.ContainsAny(key, "=:\n\r") ||
		strings.ContainsAny(key[:1], "[#;") {
		return fmt.Errorf("%w: key %q", ErrUnencodable, key)
	}
	if !strings.Contains(value, "\n") {
		if value != strings.TrimSpace(value) {
			return fmt.Errorf("%w: %s value has surrounding blanks", ErrUnencodable, key)
		}
		return nil
	}
	for i, line := range strings.Split(value, "\n") {
		switch {
		case line == "" || line != strings.TrimSpace(line):
			return fmt.Errorf("%w: %s line %d is blank or padded", ErrUnencodable, key, i+1)
		case i > 0 && (line[0] == '#' || line[0] == ';'):
			return fmt.Errorf("%w: %s line %d would read as a comment", ErrUnencodable, key, i+1)
		}
	}
	return nil
}

// Delete removes key and reports whether it was present.
func (s *Section) Delete(key string) bool {
	folded := foldKey(key)
	for i, e := range s.Entries {
		if foldKey(e.Key) == folded {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the keys in file order, as spelled in the file.
func (s *Section) Keys() []string {
	keys := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Encode writes the document in parameter-file syntax, comment and blank
// lines included.  A section without leading lines is separated from the
// previous one by a blank line.
func (d *Document) Encode(w io.Writer) error {
	for i, s := range d.Sections {
		if i > 0 && len(s.Comments) == 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := encodeComments(w, s.Comments); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", s.Name); err != nil {
			return err
		}
		for _, e := range s.Entries {
			if err := encodeComments(w, e.Comments); err != nil {
				return err
			}
			if err := encodeEntry(w, e); err != nil {
				return err
			}
		}
	}
	return encodeComments(w, d.Trailer)
}

func encodeComments(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func encodeEntry(w io.Writer, e *Entry) error {
	if e.Value == "" {
		_, err := fmt.Fprintf(w, "%s =\n", e.Key)
		return err
	}
	lines := strings.Split(e.Value, "\n")
	if _, err := fmt.Fprintf(w, "%s = %s\n", e.Key, lines[0]); err != nil {
		return err
	}
	for _, line := range lines[1:] {
		if _, err := fmt.Fprintf(w, "\t%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the encoded document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_ = d.Encode(&buf)
	return buf.Bytes()
}
