// Package pipeline composes table operations, either fluently in code or
// from a declarative definition file.
package pipeline

import (
	"github.com/leengari/tidytable/internal/domain/data"
	"github.com/leengari/tidytable/internal/domain/schema"
	"github.com/leengari/tidytable/internal/query/operations/combine"
	"github.com/leengari/tidytable/internal/query/operations/projection"
	"github.com/leengari/tidytable/internal/query/operations/reshape"
	"github.com/leengari/tidytable/internal/query/operations/separate"
)

// Chain threads one table through a sequence of operations. The first
// failing operation stops the chain; later calls are no-ops and Table
// reports that error.
//
//	t, err := pipeline.From(wide).
//		Gather("taxon", "presence", taxa, true).
//		Separate("vegplot", []string{"site", "transect", "releve"}, []int{2, 4}, true).
//		Table()
type Chain struct {
	table *schema.Table
	err   error
}

func From(t *schema.Table) *Chain {
	return &Chain{table: t}
}

func (c *Chain) then(op func(*schema.Table) (*schema.Table, error)) *Chain {
	if c.err != nil {
		return c
	}
	next, err := op(c.table)
	if err != nil {
		return &Chain{table: c.table, err: err}
	}
	return &Chain{table: next}
}

func (c *Chain) Gather(key, value string, columns []string, dropMissing bool) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return reshape.Gather(t, key, value, columns, dropMissing)
	})
}

func (c *Chain) Spread(key, value string) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return reshape.Spread(t, key, value)
	})
}

func (c *Chain) Separate(column string, into []string, offsets []int, dropSource bool) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return separate.Separate(t, column, into, offsets, dropSource)
	})
}

func (c *Chain) Unite(target string, columns []string, sep string, dropSources bool) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return separate.Unite(t, target, columns, sep, dropSources)
	})
}

func (c *Chain) Select(columns ...string) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return projection.Select(t, columns...)
	})
}

func (c *Chain) SelectColumns(proj *projection.Projection) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return projection.SelectColumns(t, proj)
	})
}

func (c *Chain) Distinct() *Chain {
	return c.then(projection.Distinct)
}

func (c *Chain) Tag(column string, value data.Value) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return combine.Tag(t, column, value)
	})
}

// Union appends the rows of others after the current table
func (c *Chain) Union(others ...*schema.Table) *Chain {
	return c.then(func(t *schema.Table) (*schema.Table, error) {
		return combine.Union(append([]*schema.Table{t}, others...)...)
	})
}

// Table returns the final table or the first error
func (c *Chain) Table() (*schema.Table, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.table, nil
}

// Err returns the first error of the chain, if any
func (c *Chain) Err() error { return c.err }
