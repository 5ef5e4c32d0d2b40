package core

import "context"

// MDType is the declared type of a metadata value.
type MDType string

// Metadata value types understood by the datamodel service.
const (
	MDString MDType = "string"
	MDNumber MDType = "number"
	MDDate   MDType = "date"
)

// Point is a single time-series observation: a millisecond epoch
// timestamp and a value.
type Point struct {
	Timestamp int64
	Value     float64
}

// TSRef is a lightweight reference to a persisted timeseries.
type TSRef struct {
	TSUID string
	FID   string
}

// DatasetRecord is the datamodel representation of a dataset.
type DatasetRecord struct {
	Name        string
	Description string
	TS          []TSRef
}

// DatasetSummary is the list representation of a dataset (no members).
type DatasetSummary struct {
	Name        string
	Description string
}

// MetaEntry is one typed metadata value as stored by the datamodel.
type MetaEntry struct {
	Value string
	DType MDType
}

// TableColumn is an ordered table header with optional typing.
type TableColumn struct {
	Name  string
	DType MDType
}

// TableRecord is the wire representation of a table.
type TableRecord struct {
	Name        string
	Title       string
	Description string
	Columns     []TableColumn
	Rows        [][]string
}

// TableSummary is the list representation of a table.
type TableSummary struct {
	Name        string
	Title       string
	Description string
}

// OperatorParam describes one declared input, parameter or output of an
// operator.
type OperatorParam struct {
	Name        string
	Label       string
	Description string
	Type        string
}

// OperatorRecord is the catalog representation of an operator.
type OperatorRecord struct {
	ID          int
	Name        string
	Label       string
	Family      string
	Description string
	Inputs      []OperatorParam
	Parameters  []OperatorParam
	Outputs     []OperatorParam
}

// ProcessResult references one stored output of an operator run.
type ProcessResult struct {
	ID        string
	ProcessID string
	Name      string
	Type      string
}

// DatamodelClient is the contract with the datamodel service, the system
// of record for structural data. Implementations map backend failures to
// the core error kinds (ErrNotFound, ErrConflict, ErrValidation,
// ErrUnavailable).
type DatamodelClient interface {
	DatasetCreate(ctx context.Context, name, description string, tsuids []string) error
	DatasetRead(ctx context.Context, name string) (DatasetRecord, error)
	// DatasetDelete with deep set also erases member timeseries and
	// their metadata.
	DatasetDelete(ctx context.Context, name string, deep bool) error
	DatasetList(ctx context.Context) ([]DatasetSummary, error)

	TSList(ctx context.Context) ([]TSRef, error)
	// TSDelete removes the timeseries record together with its metadata
	// and functional identifier, as a single logical operation.
	TSDelete(ctx context.Context, tsuid string) error
	// TSFromMetadata returns the TSUIDs whose metadata satisfy the
	// constraint: values of one key are OR-ed, keys are AND-ed.
	TSFromMetadata(ctx context.Context, constraint map[string][]string) ([]string, error)

	FIDCreate(ctx context.Context, tsuid, fid string) error
	FIDFromTSUID(ctx context.Context, tsuid string) (string, error)
	TSUIDFromFID(ctx context.Context, fid string) (string, error)

	MetadataUpsert(ctx context.Context, tsuid, name, value string, dtype MDType) error
	MetadataDelete(ctx context.Context, tsuid, name string) error
	// MetadataFetch returns the typed metadata bags for the given
	// TSUIDs, keyed by TSUID then by metadata name. An unknown TSUID is
	// an ErrNotFound.
	MetadataFetch(ctx context.Context, tsuids []string) (map[string]map[string]MetaEntry, error)

	TableCreate(ctx context.Context, t TableRecord) error
	TableRead(ctx context.Context, name string) (TableRecord, error)
	TableDelete(ctx context.Context, name string) error
	TableList(ctx context.Context) ([]TableSummary, error)

	ResultList(ctx context.Context, pid string) ([]ProcessResult, error)
	ResultRead(ctx context.Context, rid string) ([]byte, error)
}

// TSDBClient is the contract with the time-series database. It never
// touches structural metadata.
type TSDBClient interface {
	// AssignRef reserves a fresh TSUID in the time-series database.
	AssignRef(ctx context.Context) (string, error)
	// AddPoints appends points to a TSUID and returns the first date,
	// last date and number of points written.
	AddPoints(ctx context.Context, tsuid string, points []Point) (start, end int64, count int, err error)
	// Points reads the points of a TSUID within [sd, ed].
	Points(ctx context.Context, tsuid string, sd, ed int64) ([]Point, error)
	// PointCount returns the number of stored points up to ed
	// (0 means no upper bound).
	PointCount(ctx context.Context, tsuid string, ed int64) (int, error)
}

// CatalogClient is the contract with the operator catalog. Read-mostly:
// operators are registered externally.
type CatalogClient interface {
	OperatorList(ctx context.Context) ([]OperatorRecord, error)
	OperatorRead(ctx context.Context, name string) (OperatorRecord, error)
}

// Clients bundles the three backend clients an API needs.
type Clients struct {
	Datamodel DatamodelClient
	TSDB      TSDBClient
	Catalog   CatalogClient
}
