package projection

import (
	"fmt"

	"github.com/leengari/tidytable/internal/domain/errors"
	"github.com/leengari/tidytable/internal/domain/schema"
)

// ValidateProjection checks that every referenced column exists in the table
// and that no two projected columns end up with the same output name.
func ValidateProjection(table *schema.Table, proj *Projection) error {
	if proj == nil || proj.SelectAll {
		return nil
	}
	if len(proj.Columns) == 0 {
		return errors.NewConfigurationError("select", "columns", "no columns selected")
	}

	outputs := make(map[string]bool, len(proj.Columns))
	for _, colRef := range proj.Columns {
		if !table.HasColumn(colRef.Column) {
			return errors.NewUnknownColumn("select", table.Name(), colRef.Column)
		}

		name := colRef.OutputName()
		if outputs[name] {
			return errors.NewConfigurationError("select", "columns",
				fmt.Sprintf("column '%s' selected twice", name))
		}
		outputs[name] = true
	}

	return nil
}
