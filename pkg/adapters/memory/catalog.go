package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// Catalog is an in-memory operator registry. Operators are registered
// through Register, mirroring the fact that the real catalog is fed
// externally.
type Catalog struct {
	mu  sync.Mutex
	ops map[string]core.OperatorRecord
}

// NewCatalog returns a catalog seeded with the given operators.
func NewCatalog(ops ...core.OperatorRecord) *Catalog {
	c := &Catalog{ops: make(map[string]core.OperatorRecord)}
	for _, op := range ops {
		c.Register(op)
	}
	return c
}

var _ core.CatalogClient = (*Catalog)(nil)

// Register adds or replaces an operator definition.
func (c *Catalog) Register(op core.OperatorRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if op.ID == 0 {
		op.ID = len(c.ops) + 1
	}
	c.ops[op.Name] = op
}

func (c *Catalog) OperatorList(ctx context.Context) ([]core.OperatorRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.OperatorRecord, 0, len(c.ops))
	for _, op := range c.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Catalog) OperatorRead(ctx context.Context, name string) (core.OperatorRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	op, ok := c.ops[name]
	if !ok {
		return core.OperatorRecord{}, core.NotFoundf("operator %q not found", name)
	}
	return op, nil
}
