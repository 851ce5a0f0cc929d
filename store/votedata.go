// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-elect/stv"
)

var ErrMalformed = errors.New("malformed vote data")

// Format selects the textual encoding of vote data.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// VoteData is the flat persisted form of an election's vote data.
// Votes maps voter keys to rankings in submission order.
type VoteData struct {
	Candidates []string            `json:"candidates" yaml:"candidates"`
	Seats      int                 `json:"seats" yaml:"seats"`
	Votes      map[string][]string `json:"votes" yaml:"votes"`
}

// rawVoteData uses pointers so missing fields can be told apart from zero values.
type rawVoteData struct {
	Candidates *[]text          `json:"candidates" yaml:"candidates"`
	Seats      *int             `json:"seats" yaml:"seats"`
	Votes      *map[text][]text `json:"votes" yaml:"votes"`
}

// text is a string that YAML must spell as a string. Plain scalars such as
// 1 or true are rejected instead of being read back as "1" or "true".
type text string

func (t *text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return fmt.Errorf("line %d: expected a string, got %s", node.Line, node.ShortTag())
	}
	*t = text(node.Value)
	return nil
}

func texts(in []text) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

// Snapshot captures an election's candidates, seats and recorded rankings.
func Snapshot(e *stv.Election) VoteData {
	votes := make(map[string][]string)
	for _, voter := range e.Voters() {
		if b, ok := e.Ballot(voter); ok {
			votes[voter] = b.Ranking()
		}
	}
	return VoteData{
		Candidates: e.Candidates(),
		Seats:      e.Seats(),
		Votes:      votes,
	}
}

// Election rebuilds the election, replaying each ranking as a ballot.
func (d VoteData) Election() (*stv.Election, error) {
	e, err := stv.NewElection(d.Seats, d.Candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for voter, ranking := range d.Votes {
		if _, err := e.Cast(voter, ranking); err != nil {
			return nil, fmt.Errorf("%w: ballot of %s: %w", ErrMalformed, voter, err)
		}
	}
	return e, nil
}

// Encode writes the vote data in the given format.
func Encode(w io.Writer, d VoteData, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode vote data: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		if err := json.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("failed to encode vote data: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Decode reads vote data, rejecting missing fields, unknown fields and
// values of the wrong type.
func Decode(r io.Reader, format Format) (VoteData, error) {
	var raw rawVoteData
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			return VoteData{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return VoteData{}, fmt.Errorf("%w: unexpected data after vote data", ErrMalformed)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return VoteData{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return VoteData{}, fmt.Errorf("%w: unexpected data after vote data", ErrMalformed)
		}
	default:
		return VoteData{}, fmt.Errorf("unknown format %q", format)
	}

	switch {
	case raw.Candidates == nil:
		return VoteData{}, fmt.Errorf("%w: missing candidates", ErrMalformed)
	case raw.Seats == nil:
		return VoteData{}, fmt.Errorf("%w: missing seats", ErrMalformed)
	case raw.Votes == nil:
		return VoteData{}, fmt.Errorf("%w: missing votes", ErrMalformed)
	case *raw.Seats < 1:
		return VoteData{}, fmt.Errorf("%w: seats must be at least 1, got %d", ErrMalformed, *raw.Seats)
	}

	votes := make(map[string][]string, len(*raw.Votes))
	for voter, ranking := range *raw.Votes {
		votes[string(voter)] = texts(ranking)
	}
	return VoteData{
		Candidates: texts(*raw.Candidates),
		Seats:      *raw.Seats,
		Votes:      votes,
	}, nil
}

// Save writes the election's vote data to w.
func Save(w io.Writer, e *stv.Election, format Format) error {
	return Encode(w, Snapshot(e), format)
}

// Load decodes vote data from r and rebuilds the election.
func Load(r io.Reader, format Format) (*stv.Election, error) {
	d, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return d.Election()
}

// SaveFile writes the election to path, choosing the format by extension.
func SaveFile(path string, e *stv.Election) error {
	return WriteFile(path, Snapshot(e))
}

// WriteFile writes vote data to path, choosing the format by extension.
func WriteFile(path string, d VoteData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, d, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads an election from path, choosing the format by extension.
func LoadFile(path string) (*stv.Election, error) {
	d, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.Election()
}

// ReadFile decodes the vote data stored at path.
func ReadFile(path string) (VoteData, error) {
	f, err := os.Open(path)
	if err != nil {
		return VoteData{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}
