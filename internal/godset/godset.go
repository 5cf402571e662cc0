/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package godset loads the term bank and serves it wholesale: one TEXT
// frame with every term, then silence. Other tenants reuse the bank.
package godset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

// Term is one row of the term bank. Chapter, section, and tag stay
// server-side; the rest goes out on the wire.
type Term struct {
	Chapter    int    `json:"-"`
	Section    int    `json:"-"`
	YearStart  int    `json:"yearStart"`
	YearEnd    int    `json:"yearEnd"`
	Social     bool   `json:"social"`
	Political  bool   `json:"political"`
	Economic   bool   `json:"economic"`
	Tag        string `json:"-"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Location is the chapter.section pair a term belongs to.
func (t Term) Location() (chapter, section int) {
	return t.Chapter, t.Section
}

const numFields = 10

func parseTerm(line string) (Term, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != numFields {
		return Term{}, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}

	var t Term
	var err error

	for i, dst := range []*int{&t.Chapter, &t.Section, &t.YearStart, &t.YearEnd} {
		if *dst, err = strconv.Atoi(fields[i]); err != nil {
			return Term{}, err
		}
	}
	for i, dst := range []*bool{&t.Social, &t.Political, &t.Economic} {
		if *dst, err = strconv.ParseBool(fields[4+i]); err != nil {
			return Term{}, err
		}
	}

	t.Tag = strings.TrimSpace(fields[7])
	t.Term = strings.TrimSpace(fields[8])
	t.Definition = strings.TrimSpace(fields[9])

	return t, nil
}

// Load reads the tab-separated term bank. Any malformed line fails the
// whole load.
func Load(path string) ([]Term, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []Term

	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		term, err := parseTerm(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// Tenant pushes the marshaled bank to every peer on connect.
type Tenant struct {
	payload string
}

func New(terms []Term) (*Tenant, error) {
	if terms == nil {
		terms = []Term{}
	}
	data, err := json.Marshal(terms)
	if err != nil {
		return nil, err
	}
	return &Tenant{payload: string(data)}, nil
}

func (t *Tenant) OnConnect(id gate.PeerID, w *ws.Writer) {
	_ = w.WriteText(t.payload)
}

func (t *Tenant) OnMessage(id gate.PeerID, msg ws.Message) error {
	return gate.ErrDisconnect
}

func (t *Tenant) OnDisconnect(id gate.PeerID) {}

func (t *Tenant) OnTick() {}
