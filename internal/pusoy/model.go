/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pusoy

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Seednode/arcade/internal/cards"
)

// defaultPassCount is the guess used for play pairings the model has no
// data for.
const defaultPassCount = 3.0

type modelKey struct {
	onKind   cards.PlayKind
	onCard   cards.Card
	playKind cards.PlayKind
	playCard cards.Card
}

// PassModel estimates how many pass-rounds a candidate play sits
// unanswered when made on top of a given table play. Rows are
// tab-separated: kind, ranking card, kind, ranking card, count.
type PassModel struct {
	table map[modelKey]float64
}

func LoadPassModel(path string) (*PassModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table := make(map[modelKey]float64)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("bot model %s line %d: want 5 fields, got %d", path, line, len(fields))
		}

		onKind, err := parseKind(fields[0])
		if err != nil {
			return nil, fmt.Errorf("bot model %s line %d: %w", path, line, err)
		}
		onCard, err := cards.ParseCard(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bot model %s line %d: %w", path, line, err)
		}
		playKind, err := parseKind(fields[2])
		if err != nil {
			return nil, fmt.Errorf("bot model %s line %d: %w", path, line, err)
		}
		playCard, err := cards.ParseCard(fields[3])
		if err != nil {
			return nil, fmt.Errorf("bot model %s line %d: %w", path, line, err)
		}
		count, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("bot model %s line %d: %w", path, line, err)
		}

		table[modelKey{onKind, onCard, playKind, playCard}] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &PassModel{table: table}, nil
}

// Expected looks up the pass count for playing `play` on top of `on`,
// falling back to defaultPassCount. Safe on a nil model.
func (m *PassModel) Expected(on, play cards.Play) float64 {
	if m == nil {
		return defaultPassCount
	}
	key := modelKey{on.Kind, on.Ranking, play.Kind, play.Ranking}
	if count, ok := m.table[key]; ok {
		return count
	}
	return defaultPassCount
}

func parseKind(s string) (cards.PlayKind, error) {
	for k := cards.Pass; k <= cards.StraitFlush; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unrecognized play kind %q", s)
}
