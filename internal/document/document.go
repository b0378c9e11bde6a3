// Package document reads and writes the TOML files hosts keep their
// properties in.
//
// A document is an ordered list of items:
//
//	[[item]]
//	name = "Width"
//	value = 100
//
//	[[item]]
//	name = "Color"
//	value = ["red", "green", "blue"]
//
// An item without a value loads with a nil value.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/propgrid/internal/property"
)

// Change is an edit applied to a document.
type Change struct {
	Name  string
	Value any
}

// Document holds a host's items. It is the source of truth the grid's
// edits are applied to.
type Document struct {
	path    string
	items   []property.Item
	changes []Change
}

type fileFormat struct {
	Items []entry `toml:"item"`
}

type entry struct {
	Name  string `toml:"name"`
	Value any    `toml:"value"`
}

// New creates an in-memory document.
func New(items []property.Item) *Document {
	d := &Document{items: make([]property.Item, len(items))}
	copy(d.items, items)
	return d
}

// Load reads the document at path under a shared lock.
func Load(path string) (*Document, error) {
	fileLock := flock.New(path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	defer fileLock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	d.path = path
	return d, nil
}

// Parse decodes a document.
func Parse(data []byte) (*Document, error) {
	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	d := &Document{items: make([]property.Item, 0, len(f.Items))}
	for _, e := range f.Items {
		d.items = append(d.items, property.Pair(e.Name, e.Value))
	}
	return d, nil
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Items returns a copy of the items.
func (d *Document) Items() []property.Item {
	items := make([]property.Item, len(d.items))
	copy(items, d.items)
	return items
}

// Apply sets the value of the first item named name. It reports whether
// such an item exists.
func (d *Document) Apply(name string, value any) bool {
	for i := range d.items {
		if d.items[i].Name == name {
			d.items[i].Value = value
			d.changes = append(d.changes, Change{Name: name, Value: value})
			return true
		}
	}
	return false
}

// ApplyAt sets the value of the item at index i. It reports whether i is
// in range.
func (d *Document) ApplyAt(i int, value any) bool {
	if i < 0 || i >= len(d.items) {
		return false
	}
	d.items[i].Value = value
	d.changes = append(d.changes, Change{Name: d.items[i].Name, Value: value})
	return true
}

// Changes returns the applied edits, oldest first.
func (d *Document) Changes() []Change {
	changes := make([]Change, len(d.changes))
	copy(changes, d.changes)
	return changes
}

// LastChange returns the most recent edit.
func (d *Document) LastChange() (Change, bool) {
	if len(d.changes) == 0 {
		return Change{}, false
	}
	return d.changes[len(d.changes)-1], true
}

// Replace takes over the items of other, e.g. after a reload. The edit
// history is kept.
func (d *Document) Replace(other *Document) {
	d.items = other.Items()
	if other.path != "" {
		d.path = other.path
	}
}

// Marshal encodes the document. Items with a nil value are written
// without a value key, since TOML has no null.
func (d *Document) Marshal() ([]byte, error) {
	tables := make([]map[string]any, len(d.items))
	for i, item := range d.items {
		t := map[string]any{"name": item.Name}
		if item.Value != nil {
			t["value"] = item.Value
		}
		tables[i] = t
	}
	return toml.Marshal(map[string]any{"item": tables})
}

// Save writes the document to path atomically under an exclusive lock.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Acquire exclusive lock - blocks until lock is available
	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer fileLock.Unlock()

	// Write atomically: write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
