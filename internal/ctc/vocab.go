package ctc

import (
	"encoding/json"
	"fmt"
	"os"
)

// WordDelimiter is the vocabulary token that separates words in
// character-level CTC models.
const WordDelimiter = "|"

// LoadVocab reads a vocab.json mapping tokens to label IDs, e.g.
// {"<pad>": 0, "<s>": 1, "|": 4, "E": 5, ...}, and returns the inverse
// ID -> token table.
func LoadVocab(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ctc: reading vocabulary: %w", err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ctc: parsing vocabulary JSON: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("ctc: vocabulary %s is empty", path)
	}

	maxID := 0
	for tok, id := range raw {
		if id < 0 {
			return nil, fmt.Errorf("ctc: token %q has negative ID %d", tok, id)
		}
		if id > maxID {
			maxID = id
		}
	}

	vocab := make([]string, maxID+1)
	for tok, id := range raw {
		vocab[id] = tok
	}

	return vocab, nil
}

// BlankID returns the label ID of the blank token. Character CTC models
// use <pad> as the blank; if the vocabulary has no <pad> token, label 0
// is assumed.
func BlankID(vocab []string) int {
	for id, tok := range vocab {
		if tok == "<pad>" {
			return id
		}
	}
	return 0
}
