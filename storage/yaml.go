// Package storage provides persistence adapters for statem machines.
package storage

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Snapshot is an in-memory machine snapshot that doubles as a
// statem.Saver[S] and a statem.Loader[S], with a YAML representation for
// keeping it on disk.
type Snapshot[S comparable] struct {
	// Current is the saved current state, nil when the machine had not
	// entered one.
	Current *S `yaml:"current,omitempty"`
	// History maps each super state to its last active sub-state.
	History map[S]S `yaml:"history,omitempty"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot[S comparable]() *Snapshot[S] {
	return &Snapshot[S]{}
}

// ReadSnapshot decodes a snapshot from its YAML representation.
func ReadSnapshot[S comparable](r io.Reader) (*Snapshot[S], error) {
	var snap Snapshot[S]
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// Write encodes the snapshot as YAML.
func (s *Snapshot[S]) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// SaveCurrentState implements statem.Saver.
func (s *Snapshot[S]) SaveCurrentState(id S, ok bool) error {
	if ok {
		s.Current = &id
	} else {
		s.Current = nil
	}
	return nil
}

// SaveHistoryStates implements statem.Saver.
func (s *Snapshot[S]) SaveHistoryStates(history map[S]S) error {
	s.History = history
	return nil
}

// LoadCurrentState implements statem.Loader.
func (s *Snapshot[S]) LoadCurrentState() (S, bool, error) {
	if s.Current == nil {
		var zero S
		return zero, false, nil
	}
	return *s.Current, true, nil
}

// LoadHistoryStates implements statem.Loader.
func (s *Snapshot[S]) LoadHistoryStates() (map[S]S, error) {
	return s.History, nil
}
