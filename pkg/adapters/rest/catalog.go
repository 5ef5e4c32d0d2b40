package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// Catalog talks to the operator catalog REST API.
type Catalog struct {
	c *client
}

// NewCatalog builds a catalog client rooted at baseURL
// (e.g. http://host/catalog/api).
func NewCatalog(baseURL string, cfg Config) *Catalog {
	return &Catalog{c: newClient(baseURL, cfg)}
}

var _ core.CatalogClient = (*Catalog)(nil)

type wireParam struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type wireOperator struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Family      string      `json:"family"`
	Description string      `json:"description"`
	Inputs      []wireParam `json:"inputs"`
	Parameters  []wireParam `json:"parameters"`
	Outputs     []wireParam `json:"outputs"`
}

func fromWireOperator(w wireOperator) core.OperatorRecord {
	conv := func(ps []wireParam) []core.OperatorParam {
		out := make([]core.OperatorParam, 0, len(ps))
		for _, p := range ps {
			out = append(out, core.OperatorParam{
				Name:        p.Name,
				Label:       p.Label,
				Description: p.Description,
				Type:        p.Type,
			})
		}
		return out
	}
	return core.OperatorRecord{
		ID:          w.ID,
		Name:        w.Name,
		Label:       w.Label,
		Family:      w.Family,
		Description: w.Description,
		Inputs:      conv(w.Inputs),
		Parameters:  conv(w.Parameters),
		Outputs:     conv(w.Outputs),
	}
}

func (c *Catalog) OperatorList(ctx context.Context) ([]core.OperatorRecord, error) {
	var wire []wireOperator
	if err := c.c.do(ctx, http.MethodGet, "/operators", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]core.OperatorRecord, 0, len(wire))
	for _, w := range wire {
		out = append(out, fromWireOperator(w))
	}
	return out, nil
}

func (c *Catalog) OperatorRead(ctx context.Context, name string) (core.OperatorRecord, error) {
	var wire wireOperator
	if err := c.c.do(ctx, http.MethodGet, "/operators/"+url.PathEscape(name), nil, nil, &wire); err != nil {
		return core.OperatorRecord{}, err
	}
	return fromWireOperator(wire), nil
}
