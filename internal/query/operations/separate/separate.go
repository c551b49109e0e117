// Package separate splits composite-coded columns into atomic columns and
// joins them back.
package separate

import (
	"fmt"
	"log/slog"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// Separate slices every cell of source into len(into) pieces at the given
// character offsets. Offset i ends piece i and starts piece i+1, so there
// must be exactly len(into)-1 strictly increasing, positive offsets.
//
// The new TEXT columns replace source at its position when dropSource is set
// and are appended otherwise. A missing source cell yields missing pieces.
// Numbers are split on their text rendering.
func Separate(t *schema.Table, source string, into []string, offsets []int, dropSource bool) (*schema.Table, error) {
	srcIndex := t.Schema().ColumnIndex(source)
	if srcIndex < 0 {
		return nil, errors.NewUnknownColumn("separate", t.Name(), source)
	}
	if err := validateSplit(t, source, into, offsets, dropSource); err != nil {
		return nil, err
	}

	pieces := make([]schema.Column, len(into))
	for i, name := range into {
		pieces[i] = schema.Column{Name: name, Type: schema.ColumnTypeText}
	}

	cols := t.Columns()
	var outCols []schema.Column
	if dropSource {
		outCols = make([]schema.Column, 0, len(cols)-1+len(pieces))
		outCols = append(outCols, cols[:srcIndex]...)
		outCols = append(outCols, pieces...)
		outCols = append(outCols, cols[srcIndex+1:]...)
	} else {
		outCols = append(cols, pieces...)
	}

	last := offsets[len(offsets)-1]
	b := schema.NewBuilder(t.Name(), outCols)
	b.Grow(t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		v := row.Get(source)
		if dropSource {
			delete(row.Data, source)
		}

		if v.IsMissing() {
			for _, name := range into {
				row.Set(name, data.Missing())
			}
			b.Append(row)
			continue
		}

		runes := []rune(v.String())
		if len(runes) < last {
			return nil, errors.NewMalformedValue("separate", source, v.String(), i,
				fmt.Sprintf("%d characters, need at least %d", len(runes), last))
		}
		start := 0
		for j, name := range into {
			end := len(runes)
			if j < len(offsets) {
				end = offsets[j]
			}
			row.Set(name, data.Text(string(runes[start:end])))
			start = end
		}
		b.Append(row)
	}

	slog.Debug("separate",
		"table", t.Name(),
		"column", source,
		"into", into,
		"rows", t.Len(),
	)
	return b.Build()
}

func validateSplit(t *schema.Table, source string, into []string, offsets []int, dropSource bool) error {
	if len(into) < 2 {
		return errors.NewConfigurationError("separate", "into", "need at least two new columns")
	}
	if len(offsets) != len(into)-1 {
		return errors.NewConfigurationError("separate", "offsets",
			fmt.Sprintf("%d offsets for %d columns, expected %d", len(offsets), len(into), len(into)-1))
	}
	prev := 0
	for _, off := range offsets {
		if off <= prev {
			return errors.NewConfigurationError("separate", "offsets",
				fmt.Sprintf("offsets must be positive and strictly increasing, got %v", offsets))
		}
		prev = off
	}

	seen := make(map[string]bool, len(into))
	for _, name := range into {
		if name == "" {
			return errors.NewConfigurationError("separate", "into", "empty column name")
		}
		if seen[name] {
			return errors.NewConfigurationError("separate", "into",
				fmt.Sprintf("column '%s' listed twice", name))
		}
		seen[name] = true
		if t.HasColumn(name) && !(dropSource && name == source) {
			return errors.NewConfigurationError("separate", "into",
				fmt.Sprintf("column '%s' already exists in table '%s'", name, t.Name()))
		}
	}
	return nil
}
