// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"carvel.dev/yaml2json/pkg/yamlsplit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitStrings(t *testing.T, input string) []string {
	t.Helper()

	docs, err := yamlsplit.SplitBytes([]byte(input))
	require.NoError(t, err)

	var result []string
	for _, doc := range docs {
		result = append(result, doc.String())
	}
	require.Equal(t, input, strings.Join(result, ""), "documents must concatenate back to the input")
	return result
}

func TestSplit(t *testing.T) {
	t.Run("empty stream yields no documents", func(t *testing.T) {
		assert.Empty(t, splitStrings(t, ""))
	})

	t.Run("stream without markers is a single document", func(t *testing.T) {
		input := "hello: world\nlist:\n- a\n- b\n"
		assert.Equal(t, []string{input}, splitStrings(t, input))
	})

	t.Run("last line without newline", func(t *testing.T) {
		assert.Equal(t, []string{"abc: def"}, splitStrings(t, "abc: def"))
	})

	t.Run("start marker begins the next document", func(t *testing.T) {
		assert.Equal(t, []string{"hello: world\n", "---\nfoo: bar\n"},
			splitStrings(t, "hello: world\n---\nfoo: bar\n"))
	})

	t.Run("adjacent markers produce an empty document", func(t *testing.T) {
		assert.Equal(t, []string{"---\n", "---\n"}, splitStrings(t, "---\n---\n"))
	})

	t.Run("end marker closes the document and unmarked content starts the next", func(t *testing.T) {
		assert.Equal(t, []string{"a: 1\n...\n", "b: 2\n"}, splitStrings(t, "a: 1\n...\nb: 2\n"))
	})

	t.Run("end marker directly followed by start marker", func(t *testing.T) {
		assert.Equal(t, []string{"---\na: 1\n...\n", "---\nb: 2\n"}, splitStrings(t, "---\na: 1\n...\n---\nb: 2\n"))
	})

	t.Run("markers with trailing whitespace and comments", func(t *testing.T) {
		input := "a: 1\n--- # second\nb: 2\n...   # done\n---\t\nc: 3\n"
		assert.Equal(t, []string{"a: 1\n", "--- # second\nb: 2\n...   # done\n", "---\t\nc: 3\n"}, splitStrings(t, input))
	})

	t.Run("start marker followed by inline content", func(t *testing.T) {
		assert.Equal(t, []string{"--- first\n", "--- second\n"}, splitStrings(t, "--- first\n--- second\n"))
	})

	t.Run("windows line endings", func(t *testing.T) {
		assert.Equal(t, []string{"a: 1\r\n", "---\r\nb: 2\r\n"}, splitStrings(t, "a: 1\r\n---\r\nb: 2\r\n"))
	})
}

func TestSplitIgnoresMarkerLookalikes(t *testing.T) {
	cases := []struct {
		desc  string
		input string
	}{
		{"indented marker", "a:\n  ---\nb: 1\n"},
		{"marker glued to text", "---foo: 1\n...bar\n"},
		{"end marker followed by content", "a: 1\n... not a marker\n"},
		{"marker in a comment", "a: 1 # ---\n# ---\n"},
		{"escaped newline in double quotes", "a: \"---\\nstill one doc\"\n"},
		{"double quoted scalar spanning a marker line", "a: \"first\n---\nstill one doc\"\n"},
		{"escaped double quote does not close", "a: \"say \\\"hi\n---\nstill\"\n"},
		{"single quoted scalar spanning a marker line", "a: 'first\n...\nstill one doc'\n"},
		{"doubled single quote does not close", "a: 'it''s\n---\nstill'\n"},
		{"quote inside flow sequence", "a: [1, 'two\n---\nthree', 4]\n"},
		{"literal block scalar", "script: |\n  ---\n  more text\n"},
		{"folded block scalar with indicators", "text: >2-\n    ...\n  ---\n"},
		{"block scalar in sequence", "- |\n ---\n"},
		{"block scalar with tag and anchor", "a: !!str &x |\n  ---\n"},
		{"block scalar with comment after header", "a: | # note\n  ---\n"},
		{"blank lines inside block scalar", "a: |\n  x\n\n\n  ---\n"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, []string{tc.input}, splitStrings(t, tc.input))
		})
	}
}

func TestSplitBlockScalarBoundaries(t *testing.T) {
	t.Run("marker after block scalar", func(t *testing.T) {
		input := "key: |\n  ---\n  more text\n---\nnext: doc\n"
		assert.Equal(t, []string{"key: |\n  ---\n  more text\n", "---\nnext: doc\n"}, splitStrings(t, input))
	})

	t.Run("dedented key ends block scalar before marker", func(t *testing.T) {
		input := "a: |\n  x\nb: 'open\n  close'\n---\nc: 1\n"
		assert.Equal(t, []string{"a: |\n  x\nb: 'open\n  close'\n", "---\nc: 1\n"}, splitStrings(t, input))
	})

	t.Run("empty block scalar", func(t *testing.T) {
		input := "a: |\n---\nb: 1\n"
		assert.Equal(t, []string{"a: |\n", "---\nb: 1\n"}, splitStrings(t, input))
	})

	t.Run("top level block scalar is ended by a marker", func(t *testing.T) {
		input := "--- |\nfoo\n  bar\n--- >\nbaz\n"
		assert.Equal(t, []string{"--- |\nfoo\n  bar\n", "--- >\nbaz\n"}, splitStrings(t, input))
	})

	t.Run("quote in plain scalar is literal", func(t *testing.T) {
		input := "a: it's fine\n---\nb: 1\n"
		assert.Equal(t, []string{"a: it's fine\n", "---\nb: 1\n"}, splitStrings(t, input))
	})
}

// Telling a plain scalar continuation line from a new quoted scalar needs the
// full parse context. The scanner assumes a leading quote opens a scalar, so
// the marker that follows is taken as scalar text.
func TestSplitQuoteStartingPlainContinuation(t *testing.T) {
	input := "a: foo\n  'bar\n---\nb\n"
	assert.Equal(t, []string{input}, splitStrings(t, input))

	it := yamlsplit.NewDocumentIterator(strings.NewReader(input))
	_, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, yamlsplit.ModeSingleQuote, it.Mode().Kind())
}

func TestSplitHeaders(t *testing.T) {
	t.Run("blank line before first marker", func(t *testing.T) {
		input := "\n---\nabc: def\n"
		assert.Equal(t, []string{input}, splitStrings(t, input))
	})

	t.Run("directive before first marker", func(t *testing.T) {
		input := "\n%YAML 1.2\n---\nabc: def\n"
		assert.Equal(t, []string{input}, splitStrings(t, input))
	})

	t.Run("directives after end marker", func(t *testing.T) {
		input := "%YAML 1.2\n---\nabc: def\n...\n\n%YAML 1.2\n---\naaa: bbb\n"
		assert.Equal(t, []string{
			"%YAML 1.2\n---\nabc: def\n...\n",
			"\n%YAML 1.2\n---\naaa: bbb\n",
		}, splitStrings(t, input))
	})

	t.Run("comments before first marker", func(t *testing.T) {
		input := "\n\n# a header comment\n%YAML 1.2\n---\nhello: world\n...\n---\nhello: rust\n---\n# a body comment\nhello: everyone\n"
		assert.Equal(t, []string{
			"\n\n# a header comment\n%YAML 1.2\n---\nhello: world\n...\n",
			"---\nhello: rust\n",
			"---\n# a body comment\nhello: everyone\n",
		}, splitStrings(t, input))
	})

	t.Run("marker after a header only buffer joins it instead of cutting", func(t *testing.T) {
		// a buffer of comments, blank lines and directives is not a document yet,
		// so the marker does not flush it on its own
		input := "# c\n---\na: 1\n"
		assert.Equal(t, []string{input}, splitStrings(t, input))

		input = "\n# c\n\n%YAML 1.2\n# d\n---\na: 1\n"
		assert.Equal(t, []string{input}, splitStrings(t, input))
	})

	t.Run("marker after content or another marker cuts", func(t *testing.T) {
		assert.Equal(t, []string{"a: 1\n# c\n", "---\nb: 2\n"}, splitStrings(t, "a: 1\n# c\n---\nb: 2\n"))
		assert.Equal(t, []string{"---\n# c\n", "---\n"}, splitStrings(t, "---\n# c\n---\n"))
	})

	t.Run("medley", func(t *testing.T) {
		input := `%YAML 1.2
---
abc: def
---
%YAML: "not a real directive"
---
aaa: bbb
...
---
...
---
final: "document"
`
		assert.Equal(t, []string{
			"%YAML 1.2\n---\nabc: def\n",
			"---\n%YAML: \"not a real directive\"\n",
			"---\naaa: bbb\n...\n",
			"---\n...\n",
			"---\nfinal: \"document\"\n",
		}, splitStrings(t, input))
	})

	t.Run("trailing comment after end marker", func(t *testing.T) {
		docs, err := yamlsplit.SplitBytes([]byte("a: 1\n...\n# trailing\n"))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.False(t, docs[0].IsBlank())
		assert.True(t, docs[1].IsBlank())
	})
}

func TestDocumentMetadata(t *testing.T) {
	it := yamlsplit.NewDocumentIteratorWithOpts(strings.NewReader("a: 1\n---\nb: 2\nc: 3\n---\n"),
		yamlsplit.IteratorOpts{AssociatedName: "data.yml"})

	first, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Index())
	assert.Equal(t, "data.yml:1", first.Position().AsCompactString())
	assert.Equal(t, "a: 1", first.Position().Text())

	second, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Index())
	assert.Equal(t, 2, second.Position().LineNum())
	assert.Equal(t, "---", second.Position().Text())

	third, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, third.Index())
	assert.Equal(t, 5, third.Position().LineNum())
	assert.False(t, third.IsBlank())
}

func TestNextKeepsReturningEOF(t *testing.T) {
	it := yamlsplit.NewDocumentIterator(strings.NewReader("a: 1\n"))

	doc, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", doc.String())

	for i := 0; i < 3; i++ {
		_, err = it.Next()
		require.Equal(t, io.EOF, err)
	}
}

func TestReadErrorEndsIteration(t *testing.T) {
	readErr := errors.New("disk on fire")
	reader := io.MultiReader(strings.NewReader("a: 1\n---\nb: 2\n"), &failingReader{readErr})

	it := yamlsplit.NewDocumentIterator(reader)

	doc, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", doc.String())

	// "---\nb: 2\n" was read, but the stream failed before the document ended
	_, err = it.Next()
	require.ErrorIs(t, err, readErr)
	require.EqualError(t, err, "Reading line 4: disk on fire")

	_, err = it.Next()
	require.ErrorIs(t, err, readErr)
}

func TestLongLinesExceedingBuffer(t *testing.T) {
	long := "a: " + strings.Repeat("x", 100) + "\n"
	input := long + "---\n" + long

	it := yamlsplit.NewDocumentIteratorWithOpts(strings.NewReader(input), yamlsplit.IteratorOpts{BufferSize: 16})

	doc, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, long, doc.String())

	doc, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, "---\n"+long, doc.String())
}

func TestNewDocument(t *testing.T) {
	assert.True(t, yamlsplit.NewDocument([]byte("# nothing\n\n")).IsBlank())
	assert.False(t, yamlsplit.NewDocument([]byte("---\n")).IsBlank())
	assert.False(t, yamlsplit.NewDocument([]byte("a: 1")).IsBlank())
	assert.Equal(t, 1, yamlsplit.NewDocument([]byte("a: 1")).Position().LineNum())
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }
