package tree

import (
	"cmp"
	"fmt"

	"github.com/goccy/go-json"
)

// StateVersion is the current schema version of Snapshot.
const StateVersion = 1

// Snapshot is the serializable part of a State. The engine never writes it
// anywhere; hosts that want session persistence store it themselves.
//
// JSON form:
//
//	{
//	  "version": 1,
//	  "open": [["b"], ["b", "d"]],
//	  "selected": ["b", "d", "e"],
//	  "offset": 2
//	}
//
// The viewport height is host layout and is not part of the snapshot.
type Snapshot[ID cmp.Ordered] struct {
	Version  int        `json:"version" yaml:"version"`
	Open     []Path[ID] `json:"open" yaml:"open"`
	Selected Path[ID]   `json:"selected,omitempty" yaml:"selected,omitempty"`
	Offset   int        `json:"offset" yaml:"offset"`
}

// Snapshot captures open paths (sorted), selection and offset.
func (s *State[ID, T]) Snapshot() Snapshot[ID] {
	return Snapshot[ID]{
		Version:  StateVersion,
		Open:     s.open.Paths(),
		Selected: s.selected.Clone(),
		Offset:   s.offset,
	}
}

// Restore replaces open paths, selection and offset with the snapshot's.
// The height is kept.
func (s *State[ID, T]) Restore(snap Snapshot[ID]) error {
	if snap.Version != StateVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	s.open.Clear()
	for _, p := range snap.Open {
		s.open.Add(p.Clone())
	}
	s.Select(snap.Selected)
	s.offset = max(snap.Offset, 0)
	return nil
}

// MarshalState encodes the state's snapshot as indented JSON.
func MarshalState[ID cmp.Ordered, T any](s *State[ID, T]) ([]byte, error) {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling tree state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a JSON snapshot into a new State.
func UnmarshalState[ID cmp.Ordered, T any](data []byte) (*State[ID, T], error) {
	var snap Snapshot[ID]
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing tree state: %w", err)
	}
	s := NewState[ID, T]()
	if err := s.Restore(snap); err != nil {
		return nil, err
	}
	return s, nil
}
