package core

import "fmt"

// Operator mirrors one processing unit registered in the catalog.
// Catalog-owned: the manager reads catalog state, it never defines new
// operators, so Operator has no Save.
type Operator struct {
	api  *API
	name string

	ID          int
	Label       string
	Family      string
	Description string
	Inputs      []OperatorParam
	Parameters  []OperatorParam
	Outputs     []OperatorParam
}

func newOperator(api *API, rec OperatorRecord) *Operator {
	return &Operator{
		api:         api,
		name:        rec.Name,
		ID:          rec.ID,
		Label:       rec.Label,
		Family:      rec.Family,
		Description: rec.Description,
		Inputs:      rec.Inputs,
		Parameters:  rec.Parameters,
		Outputs:     rec.Outputs,
	}
}

// Name returns the operator identity.
func (o *Operator) Name() string { return o.name }

func (o *Operator) String() string { return fmt.Sprintf("operator %s", o.name) }
