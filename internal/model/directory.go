package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Directory — упорядоченный справочник кружков, ключ — уникальное имя.
// В JSON представляется объектом name → activity, порядок ключей сохраняется.
type Directory struct {
	items []Activity
	index map[string]int
}

// NewDirectory собирает справочник из списка. При повторе имени побеждает последний элемент,
// позиция остаётся от первого.
func NewDirectory(activities ...Activity) Directory {
	var d Directory
	for _, a := range activities {
		d.Put(a)
	}
	return d
}

// Put добавляет кружок в конец или заменяет существующий с тем же именем.
func (d *Directory) Put(a Activity) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[a.Name]; ok {
		d.items[i] = a
		return
	}
	d.index[a.Name] = len(d.items)
	d.items = append(d.items, a)
}

// Get возвращает кружок по имени.
func (d Directory) Get(name string) (Activity, bool) {
	i, ok := d.index[name]
	if !ok {
		return Activity{}, false
	}
	return d.items[i], true
}

// Len возвращает число кружков.
func (d Directory) Len() int {
	return len(d.items)
}

// Activities возвращает кружки в порядке справочника.
func (d Directory) Activities() []Activity {
	out := make([]Activity, len(d.items))
	copy(out, d.items)
	return out
}

// Names возвращает имена кружков в порядке справочника.
func (d Directory) Names() []string {
	names := make([]string, 0, len(d.items))
	for _, a := range d.items {
		names = append(names, a.Name)
	}
	return names
}

// MarshalJSON пишет справочник объектом, сохраняя порядок ключей.
func (d Directory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range d.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("marshal activity %q: %w", a.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает объект name → activity в порядке следования ключей.
func (d *Directory) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("directory must be a JSON object, got %v", tok)
	}

	next := Directory{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read activity name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("decode activity %q: %w", name, err)
		}
		a.Name = name
		next.Put(a)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read directory end: %w", err)
	}

	*d = next
	return nil
}
