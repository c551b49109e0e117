package reshape

import (
	"fmt"
	"log/slog"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// group is one output row of a spread: the identity cells plus the
// input position each key was filled from.
type group struct {
	identity data.Row
	filled   map[string]int
}

// Spread expands key/value rows into one column per distinct key.
//
// The remaining columns identify a group; each distinct combination becomes
// one output row, in order of first appearance. New columns follow the
// identity columns in order of first key appearance and take the type of
// valueColumn. A key absent from a group leaves a missing cell.
func Spread(t *schema.Table, keyColumn, valueColumn string) (*schema.Table, error) {
	if keyColumn == valueColumn {
		return nil, errors.NewConfigurationError("spread", "key/value",
			fmt.Sprintf("key and value columns are both '%s'", keyColumn))
	}
	if !t.HasColumn(keyColumn) {
		return nil, errors.NewUnknownColumn("spread", t.Name(), keyColumn)
	}
	valueCol, ok := t.Column(valueColumn)
	if !ok {
		return nil, errors.NewUnknownColumn("spread", t.Name(), valueColumn)
	}

	var identity []schema.Column
	identityNames := make(map[string]bool)
	for _, col := range t.Columns() {
		if col.Name == keyColumn || col.Name == valueColumn {
			continue
		}
		identity = append(identity, col)
		identityNames[col.Name] = true
	}

	var keys []string
	seenKeys := make(map[string]bool)
	var groups []*group
	byIdentity := make(map[string]*group)

	for i := 0; i < t.Len(); i++ {
		kv := t.Value(i, keyColumn)
		if kv.IsMissing() {
			return nil, errors.NewMalformedValue("spread", keyColumn, "", i, "key is missing")
		}
		key := kv.String()
		if !seenKeys[key] {
			if identityNames[key] {
				return nil, errors.NewConfigurationError("spread", "key",
					fmt.Sprintf("key '%s' collides with an existing column", key))
			}
			seenKeys[key] = true
			keys = append(keys, key)
		}

		id := identityKey(t, i, identity)
		g, ok := byIdentity[id]
		if !ok {
			g = &group{identity: data.NewRow(nil), filled: make(map[string]int)}
			for _, col := range identity {
				g.identity.Set(col.Name, t.Value(i, col.Name))
			}
			byIdentity[id] = g
			groups = append(groups, g)
		}
		if prev, dup := g.filled[key]; dup {
			rendered := make([]string, len(identity))
			for j, col := range identity {
				rendered[j] = fmt.Sprintf("%s=%s", col.Name, t.Value(i, col.Name))
			}
			return nil, &errors.DuplicateKeyError{
				Table:    t.Name(),
				Key:      key,
				Identity: rendered,
				Rows:     []int{prev, i},
			}
		}
		g.filled[key] = i
	}

	outCols := make([]schema.Column, 0, len(identity)+len(keys))
	outCols = append(outCols, identity...)
	for _, k := range keys {
		outCols = append(outCols, schema.Column{Name: k, Type: valueCol.Type})
	}

	b := schema.NewBuilder(t.Name(), outCols)
	b.Grow(len(groups))
	for _, g := range groups {
		row := g.identity
		for _, k := range keys {
			if pos, ok := g.filled[k]; ok {
				row.Set(k, t.Value(pos, valueColumn))
			} else {
				row.Set(k, data.Missing())
			}
		}
		b.Append(row)
	}

	slog.Debug("spread",
		"table", t.Name(),
		"input_rows", t.Len(),
		"groups", len(groups),
		"new_columns", len(keys),
	)
	return b.Build()
}

func identityKey(t *schema.Table, i int, identity []schema.Column) string {
	values := make([]data.Value, len(identity))
	for j, col := range identity {
		values[j] = t.Value(i, col.Name)
	}
	return data.KeyOf(values...)
}
