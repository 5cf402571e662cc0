/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pusoy

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
)

// GameID indexes into the word list. Players only ever see the word.
type GameID int

// WordList maps game ids to memorable words and back.
type WordList struct {
	words []string
}

// LoadWordList reads one word per line, lowercases, and sorts so Decode
// can binary search.
func LoadWordList(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}

	sort.Strings(words)

	return &WordList{words: words}, nil
}

func (wl *WordList) Len() int { return len(wl.words) }

func (wl *WordList) Encode(id GameID) string {
	return wl.words[id]
}

func (wl *WordList) Decode(word string) (GameID, bool) {
	word = strings.ToLower(word)
	i := sort.SearchStrings(wl.words, word)
	if i < len(wl.words) && wl.words[i] == word {
		return GameID(i), true
	}
	return 0, false
}

var errIDsExhausted = errors.New("pusoy: every game id is in use")

// idGenerator hands out ids by rejection sampling the word list, so
// short-lived games get uniformly random words.
type idGenerator struct {
	limit int
	used  map[GameID]bool
	rng   *rand.Rand
}

func newIDGenerator(limit int, rng *rand.Rand) *idGenerator {
	return &idGenerator{
		limit: limit,
		used:  make(map[GameID]bool),
		rng:   rng,
	}
}

func (g *idGenerator) next() (GameID, error) {
	if len(g.used) >= g.limit {
		return 0, errIDsExhausted
	}
	for {
		id := GameID(g.rng.IntN(g.limit))
		if !g.used[id] {
			g.used[id] = true
			return id, nil
		}
	}
}

func (g *idGenerator) free(id GameID) {
	delete(g.used, id)
}
