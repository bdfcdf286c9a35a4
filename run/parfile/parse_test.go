package parfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		section string
		key     string
		value   string
		found   bool
	}{
		{
			name:    "simple entry",
			input:   "[MCMCrun]\nchainlen = 80000\n",
			section: "MCMCrun", key: "chainlen", value: "80000", found: true,
		},
		{
			name:    "colon delimiter",
			input:   "[MCMCrun]\nnboots: 10\n",
			section: "MCMCrun", key: "nboots", value: "10", found: true,
		},
		{
			name:    "blank value",
			input:   "[MCMCrun]\npathprior =\n",
			section: "MCMCrun", key: "pathprior", value: "", found: true,
		},
		{
			name:    "inline comment kept in value",
			input:   "[MCMCrun]\nchainlen = 100 # short run\n",
			section: "MCMCrun", key: "chainlen", value: "100 # short run", found: true,
		},
		{
			name:    "case-insensitive key lookup",
			input:   "[MCMCrun]\nVerbose = True\n",
			section: "MCMCrun", key: "verbose", value: "True", found: true,
		},
		{
			name:    "comment lines skipped",
			input:   "# header\n; other\n[MCMCrun]\n# chainlen = 5\n",
			section: "MCMCrun", key: "chainlen", found: false,
		},
		{
			name:    "windows path keeps colon",
			input:   "[MCMCrun]\npath_obs = C:\\data\\obs.dat\r\n",
			section: "MCMCrun", key: "path_obs", value: "C:\\data\\obs.dat", found: true,
		},
		{
			name:    "continuation line",
			input:   "[MCMCrun]\nnotes = first\n  second\n",
			section: "MCMCrun", key: "notes", value: "first\nsecond", found: true,
		},
		{
			name:    "byte order mark",
			input:   "\ufeff[MCMCrun]\nnboots = 1\n",
			section: "MCMCrun", key: "nboots", value: "1", found: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse([]byte(tc.input))
			require.NoError(t, err)
			section := doc.Section(tc.section)
			require.NotNil(t, section)
			value, ok := section.Get(tc.key)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		line  int
		want  error
	}{
		{name: "entry before section", input: "chainlen = 5\n", line: 1, want: ErrMissingSection},
		{name: "duplicate section", input: "[A]\nx = 1\n[A]\n", line: 3, want: ErrDuplicateSection},
		{name: "duplicate key", input: "[A]\nx = 1\nX = 2\n", line: 3, want: ErrDuplicateKey},
		{name: "no delimiter", input: "[A]\njustaword\n", line: 2, want: ErrMalformedLine},
		{name: "unterminated header", input: "[A\n", line: 1, want: ErrMalformedLine},
		{name: "empty header", input: "[ ]\n", line: 1, want: ErrMalformedLine},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}
}

func TestDocumentEncode(t *testing.T) {
	input := "# comment\n[MCMCrun]\nchainlen = 80000\npathprior =\nbeagle = none\n\n[Other]\nnotes = a\n  b\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	expect := "# comment\n[MCMCrun]\nchainlen = 80000\npathprior =\nbeagle = none\n\n[Other]\nnotes = a\n\tb\n"
	assert.Equal(t, expect, string(doc.Bytes()))

	again, err := Parse(doc.Bytes())
	require.NoError(t, err)
	assert.Equal(t, doc.Section("MCMCrun").Keys(), again.Section("MCMCrun").Keys())
	notes, _ := again.Section("Other").Get("notes")
	assert.Equal(t, "a\nb", notes)
}

func TestSectionSetDelete(t *testing.T) {
	doc := &Document{}
	s := doc.AddSection("MCMCrun")
	require.NoError(t, s.Set("Verbose", "False"))
	require.NoError(t, s.Set("verbose", "True"))
	require.NoError(t, s.Set("nboots", "10"))

	assert.Equal(t, []string{"Verbose", "nboots"}, s.Keys())
	value, _ := s.Get("VERBOSE")
	assert.Equal(t, "True", value)

	assert.True(t, s.Delete("NBOOTS"))
	assert.False(t, s.Delete("nboots"))
	assert.Same(t, s, doc.AddSection("MCMCrun"))
	assert.Nil(t, doc.Section("mcmcrun"))
}

func TestComments(t *testing.T) {
	input := "# header\n\n[A]\n; about x\nx = 1\n\n# about y\ny = 2\n# trailing\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	a := doc.Section("A")
	require.NotNil(t, a)
	assert.Equal(t, []string{"# header", ""}, a.Comments)
	assert.Equal(t, []string{"; about x"}, a.Entries[0].Comments)
	assert.Equal(t, []string{"", "# about y"}, a.Entries[1].Comments)
	assert.Equal(t, []string{"# trailing"}, doc.Trailer)
	assert.Equal(t, input, string(doc.Bytes()))

	require.NoError(t, a.Set("y", "3"))
	require.NoError(t, a.Set("z", "4"))
	assert.Equal(t, "# header\n\n[A]\n; about x\nx = 1\n\n# about y\ny = 3\nz = 4\n# trailing\n", string(doc.Bytes()))

	assert.True(t, a.Delete("x"))
	assert.NotContains(t, string(doc.Bytes()), "about x")
}

func TestCheckEntry(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		ok    bool
	}{
		{name: "plain", key: "path_obs", value: "obs.dat", ok: true},
		{name: "blank value", key: "pathprior", value: "", ok: true},
		{name: "hash inside value", key: "path_obs", value: "obs.dat # kept", ok: true},
		{name: "multi-line", key: "notes", value: "a\nb", ok: true},
		{name: "continuation looks like comment", key: "notes", value: "a\n# b", ok: false},
		{name: "continuation looks like semicolon comment", key: "notes", value: "a\n; b", ok: false},
		{name: "blank continuation", key: "notes", value: "a\n\nb", ok: false},
		{name: "empty first line", key: "notes", value: "\nb", ok: false},
		{name: "padded value", key: "path_obs", value: " obs.dat", ok: false},
		{name: "padded continuation", key: "notes", value: "a\n b", ok: false},
		{name: "empty key", key: "", value: "1", ok: false},
		{name: "key with delimiter", key: "a=b", value: "1", ok: false},
		{name: "key looks like comment", key: "#a", value: "1", ok: false},
		{name: "key looks like header", key: "[a", value: "1", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckEntry(tc.key, tc.value)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrUnencodable)
				s := &Section{Name: "A"}
				assert.Error(t, s.Set(tc.key, tc.value))
				assert.Empty(t, s.Entries)
				return
			}
			require.NoError(t, err)
			doc := &Document{}
			require.NoError(t, doc.AddSection("A").Set(tc.key, tc.value))
			again, err := Parse(doc.Bytes())
			require.NoError(t, err)
			value, found := again.Section("A").Get(tc.key)
			assert.True(t, found)
			assert.Equal(t, tc.value, value)
		})
	}
}
