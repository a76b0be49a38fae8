package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_PacksParagraphs(t *testing.T) {
	text := "alpha beta\n\n\n  gamma delta  \n\nepsilon"

	chunks := NewTextChunker().ChunkText(text, 100, 0)

	assert.Equal(t, []string{"alpha beta\n\ngamma delta\n\nepsilon"}, chunks)
}

func TestChunkText_SplitsWithOverlap(t *testing.T) {
	text := "aaaaaaaaaa\n\nbbbbbbbbbb\n\ncccccccccc"

	chunks := NewTextChunker().ChunkText(text, 24, 4)

	require.Equal(t, []string{
		"aaaaaaaaaa\n\nbbbbbbbbbb",
		"bbbb\n\ncccccccccc",
	}, chunks)
}

func TestChunkText_LongParagraphBySentence(t *testing.T) {
	para := strings.Repeat("Go is fun. ", 20) + "Really!"

	chunks := NewTextChunker().ChunkText(para, 50, 5)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
	}
	assert.True(t, strings.HasPrefix(chunks[0], "Go is fun. Go is fun."))
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1], "Really!"))
}

func TestChunkText_OversizedSentenceAndRunes(t *testing.T) {
	word := strings.Repeat("é", 45)

	chunks := NewTextChunker().ChunkText(word, 20, 0)

	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c))
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 20)
	}
	assert.Equal(t, word, strings.Join(chunks, ""))
}

func TestChunkText_Defaults(t *testing.T) {
	tc := NewTextChunker()

	assert.Empty(t, tc.ChunkText("  \n\n  ", 10, 2))
	assert.Equal(t, []string{"short"}, tc.ChunkText("short", 0, -1))
	assert.Equal(t, []string{"short"}, tc.ChunkText("short", 8, 50))
}

func TestSplitIntoSentences(t *testing.T) {
	assert.Equal(t,
		[]string{"One.", "Two!", "Three?", "tail"},
		splitIntoSentences("One. Two! Three? tail"))
}
