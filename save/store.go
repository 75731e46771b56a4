// Package save keeps the player's coins and cosmetics between runs.
package save

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Category is a cosmetic slot.
type Category uint8

const (
	Body Category = iota
	Bullet
)

func (c Category) String() string {
	if c == Bullet {
		return "bullet"
	}
	return "body"
}

// DefaultItem is owned from the start in every category.
const DefaultItem = "default"

// Data is the on-disk record.
type Data struct {
	Coins        int      `msgpack:"coins"`
	OwnedBody    []string `msgpack:"owned_body"`
	OwnedBullet  []string `msgpack:"owned_bullet"`
	ActiveBody   string   `msgpack:"active_body"`
	ActiveBullet string   `msgpack:"active_bullet"`
}

func defaultData() Data {
	return Data{
		OwnedBody:    []string{DefaultItem},
		OwnedBullet:  []string{DefaultItem},
		ActiveBody:   DefaultItem,
		ActiveBullet: DefaultItem,
	}
}

// Store is safe for concurrent use. Every mutating call writes through to
// disk when the store has a path.
type Store struct {
	mu   sync.Mutex
	path string
	data Data
}

// NewMemory returns a store that never touches disk.
func NewMemory() *Store {
	return &Store{data: defaultData()}
}

// Open loads the save file at path. A missing, unreadable or corrupt file
// yields the default economy; the failure is logged, never returned.
func Open(path string) *Store {
	s := &Store{path: path, data: defaultData()}
	if path == "" {
		return s
	}
	data, err := load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("save: %v; starting from defaults", err)
		}
		return s
	}
	s.data = data
	return s
}

func load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read %s: %w", path, err)
	}
	var d Data
	if err := msgpack.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("decode %s: %w", path, err)
	}
	d.normalize()
	return d, nil
}

// normalize repairs fields an older or hand-edited file may lack.
func (d *Data) normalize() {
	if d.Coins < 0 {
		d.Coins = 0
	}
	if !slices.Contains(d.OwnedBody, DefaultItem) {
		d.OwnedBody = append([]string{DefaultItem}, d.OwnedBody...)
	}
	if !slices.Contains(d.OwnedBullet, DefaultItem) {
		d.OwnedBullet = append([]string{DefaultItem}, d.OwnedBullet...)
	}
	if !slices.Contains(d.OwnedBody, d.ActiveBody) {
		d.ActiveBody = DefaultItem
	}
	if !slices.Contains(d.OwnedBullet, d.ActiveBullet) {
		d.ActiveBullet = DefaultItem
	}
}

func (s *Store) Coins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Coins
}

func (s *Store) AddCoins(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Coins += n
	s.persist()
}

// SpendCoins deducts n and reports success. Insufficient funds change nothing.
func (s *Store) SpendCoins(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.spend(n) {
		return false
	}
	s.persist()
	return true
}

func (s *Store) spend(n int) bool {
	if n < 0 || s.data.Coins < n {
		return false
	}
	s.data.Coins -= n
	return true
}

func (s *Store) Owns(c Category, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(*s.owned(c), id)
}

// Purchase buys id for price. It fails without side effects when the item
// is already owned or the price cannot be paid.
func (s *Store) Purchase(c Category, id string, price int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := s.owned(c)
	if id == "" || slices.Contains(*owned, id) || !s.spend(price) {
		return false
	}
	*owned = append(*owned, id)
	s.persist()
	return true
}

// SetActive equips id. Unowned items are ignored.
func (s *Store) SetActive(c Category, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(*s.owned(c), id) {
		return
	}
	if c == Bullet {
		s.data.ActiveBullet = id
	} else {
		s.data.ActiveBody = id
	}
	s.persist()
}

func (s *Store) Active(c Category) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == Bullet {
		return s.data.ActiveBullet
	}
	return s.data.ActiveBody
}

func (s *Store) owned(c Category) *[]string {
	if c == Bullet {
		return &s.data.OwnedBullet
	}
	return &s.data.OwnedBody
}

// persist writes the record next to its destination and renames it into
// place. Write failures are logged; the in-memory state stays authoritative.
func (s *Store) persist() {
	if s.path == "" {
		return
	}
	if err := writeFile(s.path, s.data); err != nil {
		log.Printf("save: %v", err)
	}
}

func writeFile(path string, d Data) error {
	raw, err := msgpack.Marshal(&d)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
