package store

import (
	"bytes"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"grid-canvas/errors"
	"grid-canvas/placement"
)

// Layout is the file form of a store: settings plus every node, root first.
type Layout struct {
	Root     string           `yaml:"root"`
	Settings Settings         `yaml:"settings"`
	Nodes    []placement.Node `yaml:"nodes"`
}

// Layout snapshots the store. Nodes are listed parents-first.
func (s *Store) Layout() Layout {
	return Layout{Root: s.root, Settings: s.settings, Nodes: s.Nodes()}
}

// FromLayout builds a store from a layout. Nodes without an id get a fresh
// one, nodes without a parent are placed on the root, and a missing root
// entry is created.
func FromLayout(l Layout) (*Store, error) {
	rootID := l.Root
	if rootID == "" {
		rootID = DefaultRootID
	}
	root := placement.Node{ID: rootID, Kind: placement.KindCanvas}
	for _, n := range l.Nodes {
		if n.ID == rootID {
			root = n
		}
	}
	s := New(root, l.Settings)

	seen := map[string]bool{rootID: true}
	for _, n := range l.Nodes {
		if n.ID == rootID {
			continue
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if seen[n.ID] {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if n.ParentID == "" {
			n.ParentID = rootID
		}
		if n.Kind == "" {
			n.Kind = placement.KindWidget
		}
		if n.ID == n.ParentID {
			return nil, errors.New(errors.ErrCodeCycle, "node %q is its own parent", n.ID)
		}
		s.AddOrUpdate(n)
	}
	return s, nil
}

// Save writes the store as YAML.
func Save(w io.Writer, s *Store) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	layout := s.Layout()
	if err := enc.Encode(&layout); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return enc.Close()
}

// Load reads a YAML layout into a new store.
func Load(r io.Reader) (*Store, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return FromLayout(l)
}

// SaveFile writes the store to a YAML file.
func SaveFile(path string, s *Store) error {
	var buf bytes.Buffer
	if err := Save(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// LoadFile reads a YAML layout file into a new store.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Load(bytes.NewReader(data))
}
