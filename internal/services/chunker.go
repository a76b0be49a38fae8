package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs paragraphs into chunks of at most maxChunkSize runes.
// Paragraphs longer than that are packed sentence by sentence, and a single
// oversized sentence is cut on rune boundaries. Each chunk after the first
// starts with the last overlap runes of the chunk before it.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	p := &packer{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			p.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			for _, piece := range splitRunes(sentence, maxChunkSize-overlap-1) {
				p.add(piece, " ")
			}
		}
	}

	return p.finish()
}

type packer struct {
	max     int
	overlap int
	chunks  []string
	current strings.Builder
	size    int
	// fresh is true while current holds only carried-over overlap.
	fresh bool
}

func (p *packer) add(piece, sep string) {
	n, sepLen := utf8.RuneCountInString(piece), utf8.RuneCountInString(sep)
	if !p.fits(n, sepLen) && !p.fresh {
		p.flush()
	}
	if !p.fits(n, sepLen) {
		// The carried overlap leaves no room for this piece.
		p.reset()
	}
	if p.size > 0 {
		p.current.WriteString(sep)
		p.size += sepLen
	}
	p.current.WriteString(piece)
	p.size += n
	p.fresh = false
}

func (p *packer) fits(n, sepLen int) bool {
	return p.size == 0 || p.size+sepLen+n <= p.max
}

func (p *packer) reset() {
	p.current.Reset()
	p.size = 0
	p.fresh = false
}

func (p *packer) flush() {
	prev := p.current.String()
	p.chunks = append(p.chunks, prev)
	p.reset()

	if tail := strings.TrimSpace(lastRunes(prev, p.overlap)); tail != "" {
		p.current.WriteString(tail)
		p.size = utf8.RuneCountInString(tail)
		p.fresh = true
	}
}

func (p *packer) finish() []string {
	if p.size > 0 && !p.fresh {
		p.chunks = append(p.chunks, p.current.String())
	}
	return p.chunks
}

// splitIntoSentences splits after '.', '!' and '?', keeping the punctuation.
func splitIntoSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func splitRunes(s string, size int) []string {
	if size <= 0 {
		size = 1
	}
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}

	var out []string
	for len(runes) > 0 {
		n := min(size, len(runes))
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
