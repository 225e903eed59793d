package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Store is the shared backing of the file and pickle repositories: every
// table lives in one snapshot that is rewritten on each change.
//
// Layout: {table: {id: encoded record}}.
type Store struct {
	mu     sync.RWMutex
	path   string
	codec  snapshotCodec
	tables map[string]map[string][]byte
}

type snapshotCodec interface {
	encodeRecord(v any) ([]byte, error)
	decodeRecord(data []byte, v any) error
	encodeSnapshot(w io.Writer, tables map[string]map[string][]byte) error
	decodeSnapshot(r io.Reader) (map[string]map[string][]byte, error)
}

// NewFileStore keeps the snapshot as an indented JSON document.
func NewFileStore(path string) (*Store, error) {
	return openStore(path, jsonCodec{})
}

// NewPickleStore keeps the snapshot as a binary CBOR document.
func NewPickleStore(path string) (*Store, error) {
	return openStore(path, cborCodec{})
}

func openStore(path string, codec snapshotCodec) (*Store, error) {
	s := &Store{
		path:   path,
		codec:  codec,
		tables: make(map[string]map[string][]byte),
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tables, err := codec.decodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if tables != nil {
		s.tables = tables
	}
	return s, nil
}

func (s *Store) get(table, id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.tables[table][id]
	return raw, ok
}

func (s *Store) all(table string) [][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, 0, len(s.tables[table]))
	for _, raw := range s.tables[table] {
		out = append(out, raw)
	}
	return out
}

func (s *Store) count(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

// put writes record under id. With mustExist set it refuses to create the
// row. A failed write leaves the in-memory tables as they were.
func (s *Store) put(table, id string, record any, mustExist bool) error {
	raw, err := s.codec.encodeRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.tables[table][id]
	if mustExist && !had {
		return ErrNotFound
	}
	rows, ok := s.tables[table]
	if !ok {
		rows = make(map[string][]byte)
		s.tables[table] = rows
	}
	rows[id] = raw
	if err := s.persistLocked(); err != nil {
		if had {
			rows[id] = prev
		} else {
			delete(rows, id)
		}
		return err
	}
	return nil
}

func (s *Store) remove(table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.tables[table][id]
	if !ok {
		return nil
	}
	delete(s.tables[table], id)
	if err := s.persistLocked(); err != nil {
		s.tables[table][id] = prev
		return err
	}
	return nil
}

// persistLocked writes to a temp file in the same directory and renames it
// over the snapshot so readers never see a partial file.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.codec.encodeSnapshot(tmp, s.tables); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

type jsonCodec struct{}

func (jsonCodec) encodeRecord(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) decodeRecord(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) encodeSnapshot(w io.Writer, tables map[string]map[string][]byte) error {
	doc := make(map[string]map[string]json.RawMessage, len(tables))
	for table, rows := range tables {
		out := make(map[string]json.RawMessage, len(rows))
		for id, raw := range rows {
			out[id] = raw
		}
		doc[table] = out
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (jsonCodec) decodeSnapshot(r io.Reader) (map[string]map[string][]byte, error) {
	var doc map[string]map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	tables := make(map[string]map[string][]byte, len(doc))
	for table, rows := range doc {
		in := make(map[string][]byte, len(rows))
		for id, raw := range rows {
			in[id] = raw
		}
		tables[table] = in
	}
	return tables, nil
}

type cborCodec struct{}

func (cborCodec) encodeRecord(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (cborCodec) decodeRecord(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (cborCodec) encodeSnapshot(w io.Writer, tables map[string]map[string][]byte) error {
	return cbor.NewEncoder(w).Encode(tables)
}

func (cborCodec) decodeSnapshot(r io.Reader) (map[string]map[string][]byte, error) {
	var tables map[string]map[string][]byte
	if err := cbor.NewDecoder(r).Decode(&tables); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return tables, nil
}
