// Package ctc implements greedy CTC decoding: per-frame argmax over
// label logits, collapse of consecutive repeats, and blank removal.
package ctc

import (
	"strings"
)

// Greedy selects the highest-scoring label index for each frame.
// Empty frames are skipped. Works on raw logits or probabilities alike,
// since only the argmax matters.
func Greedy(logits [][]float32) []int {
	ids := make([]int, 0, len(logits))
	for _, frame := range logits {
		if len(frame) == 0 {
			continue
		}
		best := 0
		for i, v := range frame {
			if v > frame[best] {
				best = i
			}
		}
		ids = append(ids, best)
	}
	return ids
}

// Collapse merges runs of identical consecutive labels into a single
// occurrence and strips the blank label.
func Collapse(ids []int, blank int) []int {
	out := make([]int, 0, len(ids))
	prev := -1
	for _, id := range ids {
		if id != prev && id != blank {
			out = append(out, id)
		}
		prev = id
	}
	return out
}

// Text maps collapsed label IDs to a string using the vocabulary.
// The "|" word-delimiter token maps to a space; special tokens of the
// form "<...>" are dropped. IDs outside the vocabulary are ignored.
func Text(ids []int, vocab []string) string {
	var b strings.Builder
	for _, id := range ids {
		if id < 0 || id >= len(vocab) {
			continue
		}
		tok := vocab[id]
		switch {
		case tok == WordDelimiter:
			b.WriteString(" ")
		case strings.HasPrefix(tok, "<"):
			// <pad>, <s>, </s>, <unk>
		default:
			b.WriteString(tok)
		}
	}
	return strings.TrimSpace(b.String())
}

// Decode runs the full greedy CTC pipeline: argmax, collapse, blank
// removal, vocabulary mapping. Pure function; an empty logits sequence
// decodes to the empty string.
func Decode(logits [][]float32, vocab []string, blank int) string {
	return Text(Collapse(Greedy(logits), blank), vocab)
}
