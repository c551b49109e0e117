package pipeline

import (
	"fmt"

	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/query/operations/projection"
)

// Apply runs a single step against t
func Apply(t *schema.Table, step Step) (*schema.Table, error) {
	c := From(t)
	switch step.Op {
	case OpGather:
		c = c.Gather(step.Key, step.Value, step.Columns, step.DropMissing)
	case OpSpread:
		c = c.Spread(step.Key, step.Value)
	case OpSeparate:
		c = c.Separate(step.Column, step.Into, step.Offsets, step.DropSource)
	case OpUnite:
		c = c.Unite(step.Column, step.Columns, step.Sep, step.DropSource)
	case OpSelect:
		proj := projection.NewProjectionWithColumns()
		for _, col := range step.Columns {
			proj.AddColumn(col, step.Rename[col])
		}
		c = c.SelectColumns(proj)
	case OpDistinct:
		c = c.Distinct()
	case OpTag:
		c = c.Tag(step.Column, data.Text(step.Value))
	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}
	return c.Table()
}

// Project builds one output table from t
func Project(t *schema.Table, out Output) (*schema.Table, error) {
	c := From(t).Select(out.Columns...)
	if out.Distinct {
		c = c.Distinct()
	}
	result, err := c.Table()
	if err != nil {
		return nil, err
	}
	return result.WithName(out.Name), nil
}
