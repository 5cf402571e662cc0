/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package history is the vocabulary-quiz tenant: hosts carve a
// chapter/section range out of the term bank and run multiple-choice
// rounds against it. Wrong answers feed a confusion model that makes
// future distractors harder.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/Seednode/arcade/internal/godset"
)

var (
	ErrBlankRange  = errors.New("history: no terms in that range")
	ErrBadLocation = errors.New("history: malformed chapter.section")
)

// TermID indexes into the loaded term bank.
type TermID int

type location struct {
	chapter, section int
}

func parseLocation(s string) (location, error) {
	chapter, section, ok := strings.Cut(s, ".")
	if !ok {
		return location{}, ErrBadLocation
	}

	var loc location
	var err error
	if loc.chapter, err = strconv.Atoi(chapter); err != nil {
		return location{}, ErrBadLocation
	}
	if loc.section, err = strconv.Atoi(section); err != nil {
		return location{}, ErrBadLocation
	}
	return loc, nil
}

func (l location) beforeEq(o location) bool {
	if l.chapter != o.chapter {
		return l.chapter < o.chapter
	}
	return l.section <= o.section
}

// Vocabulary owns the term bank plus the confusion history that biases
// distractor selection.
type Vocabulary struct {
	terms     []godset.Term
	confusion *confusionModel
	rng       *rand.Rand
}

type VocabOption func(*Vocabulary)

func WithRand(rng *rand.Rand) VocabOption {
	return func(v *Vocabulary) { v.rng = rng }
}

// NewVocabulary loads prior confusions from logPath and appends new
// ones to it.
func NewVocabulary(terms []godset.Term, logPath string, opts ...VocabOption) (*Vocabulary, error) {
	confusion, err := loadConfusionModel(logPath, len(terms))
	if err != nil {
		return nil, err
	}

	v := &Vocabulary{
		terms:     terms,
		confusion: confusion,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *Vocabulary) Close() error {
	return v.confusion.close()
}

func (v *Vocabulary) termsInRange(start, end location) []TermID {
	var ids []TermID
	for i, term := range v.terms {
		chapter, section := term.Location()
		loc := location{chapter, section}
		if start.beforeEq(loc) && loc.beforeEq(end) {
			ids = append(ids, TermID(i))
		}
	}
	return ids
}

// Query is a validated term range; building one requires at least four
// terms so every question has a full option set.
type Query struct {
	start, end location
	inRange    []TermID
}

const minQuestionOptions = 4

func (v *Vocabulary) NewQuery(start, end location) (*Query, error) {
	inRange := v.termsInRange(start, end)
	if len(inRange) < minQuestionOptions {
		return nil, ErrBlankRange
	}
	return &Query{start: start, end: end, inRange: inRange}, nil
}

// MultipleChoiceQuestion is one prompt with four term options, exactly
// one of which matches the definition.
type MultipleChoiceQuestion struct {
	options      []TermID
	correctIndex int
}

func (q MultipleChoiceQuestion) IsCorrect(answer int) bool {
	return answer == q.correctIndex
}

func (q MultipleChoiceQuestion) correctTerm() TermID {
	return q.options[q.correctIndex]
}

type questionPayload struct {
	Definition string   `json:"definition"`
	Terms      []string `json:"terms"`
}

func (v *Vocabulary) payload(q MultipleChoiceQuestion) questionPayload {
	terms := make([]string, 0, len(q.options))
	for _, id := range q.options {
		terms = append(terms, v.terms[id].Term)
	}
	return questionPayload{
		Definition: v.terms[q.correctTerm()].Definition,
		Terms:      terms,
	}
}

// MultipleChoice picks a uniform prompt, then three distinct
// distractors weighted toward matching tags and historically confused
// pairs.
func (v *Vocabulary) MultipleChoice(q *Query) MultipleChoiceQuestion {
	prompt := q.inRange[v.rng.IntN(len(q.inRange))]

	weight := func(answer TermID) int {
		w := v.confusion.confusionsFor(prompt, answer)
		if v.terms[answer].Tag == v.terms[prompt].Tag {
			return w + 10
		}
		return w + 1
	}

	var wrong []TermID
	for len(wrong) < minQuestionOptions-1 {
		option := chooseWeighted(v.rng, q.inRange, weight)
		if option != prompt && !contains(wrong, option) {
			wrong = append(wrong, option)
		}
	}

	correctIndex := v.rng.IntN(minQuestionOptions)
	options := make([]TermID, 0, minQuestionOptions)
	options = append(options, wrong[:correctIndex]...)
	options = append(options, prompt)
	options = append(options, wrong[correctIndex:]...)

	return MultipleChoiceQuestion{options: options, correctIndex: correctIndex}
}

// LogAnswer records which term a player picked for the question's
// definition, right or wrong.
func (v *Vocabulary) LogAnswer(q MultipleChoiceQuestion, answer int) {
	if answer < 0 || answer >= len(q.options) {
		return
	}
	v.confusion.log(q.correctTerm(), q.options[answer])
}

func chooseWeighted(rng *rand.Rand, ids []TermID, weight func(TermID) int) TermID {
	total := 0
	for _, id := range ids {
		total += weight(id)
	}

	n := rng.IntN(total)
	for _, id := range ids {
		n -= weight(id)
		if n < 0 {
			return id
		}
	}
	return ids[len(ids)-1]
}

func contains(ids []TermID, id TermID) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}

type confusionKey struct {
	right, wrong TermID
}

// confusionModel counts how often each wrong term was picked for each
// right one, backed by an append-only TSV of (right, wrong) pairs.
type confusionModel struct {
	counts map[confusionKey]int
	file   *os.File
}

func loadConfusionModel(path string, numTerms int) (*confusionModel, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	counts := make(map[confusionKey]int)

	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		key, err := parseConfusionLine(scanner.Text(), numTerms)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		counts[key]++
	}
	if err := scanner.Err(); err != nil {
		file.Close()
		return nil, err
	}

	return &confusionModel{counts: counts, file: file}, nil
}

func parseConfusionLine(line string, numTerms int) (confusionKey, error) {
	right, wrong, ok := strings.Cut(strings.TrimRight(line, "\r"), "\t")
	if !ok {
		return confusionKey{}, errors.New("expected two fields")
	}

	parse := func(field string) (TermID, error) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, err
		}
		if n < 0 || n >= numTerms {
			return 0, fmt.Errorf("term id %d out of range", n)
		}
		return TermID(n), nil
	}

	var key confusionKey
	var err error
	if key.right, err = parse(right); err != nil {
		return confusionKey{}, err
	}
	if key.wrong, err = parse(wrong); err != nil {
		return confusionKey{}, err
	}

	return key, nil
}

func (c *confusionModel) log(right, wrong TermID) {
	_, _ = fmt.Fprintf(c.file, "%d\t%d\n", right, wrong)
	c.counts[confusionKey{right, wrong}]++
}

func (c *confusionModel) confusionsFor(right, wrong TermID) int {
	return c.counts[confusionKey{right, wrong}]
}

func (c *confusionModel) close() error {
	return c.file.Close()
}
