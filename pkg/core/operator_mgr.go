package core

import "context"

// OperatorManager mirrors the operator catalog. Read-mostly: operators
// are registered externally, so there is no New, Save or Delete here.
// Run results are stored by the datamodel service and exposed through
// Results and Result.
type OperatorManager struct {
	api *API
	dm  DatamodelClient
	cat CatalogClient
}

// Get fetches one operator by name.
func (m *OperatorManager) Get(ctx context.Context, name string) (*Operator, error) {
	if name == "" {
		return nil, Validationf("operator name shall not be empty")
	}
	rec, err := m.cat.OperatorRead(ctx, name)
	if err != nil {
		return nil, err
	}
	return newOperator(m.api, rec), nil
}

// List returns all registered operators. Each call re-queries the
// catalog.
func (m *OperatorManager) List(ctx context.Context) ([]*Operator, error) {
	recs, err := m.cat.OperatorList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Operator, 0, len(recs))
	for _, rec := range recs {
		out = append(out, newOperator(m.api, rec))
	}
	return out, nil
}

// Results lists the stored outputs of one operator run.
func (m *OperatorManager) Results(ctx context.Context, pid string) ([]ProcessResult, error) {
	if pid == "" {
		return nil, Validationf("process id shall not be empty")
	}
	return m.dm.ResultList(ctx, pid)
}

// Result reads one stored run output by result id.
func (m *OperatorManager) Result(ctx context.Context, rid string) ([]byte, error) {
	if rid == "" {
		return nil, Validationf("result id shall not be empty")
	}
	return m.dm.ResultRead(ctx, rid)
}
