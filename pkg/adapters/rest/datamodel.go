package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

// Datamodel talks to the datamodel service REST API.
type Datamodel struct {
	c *client
}

// NewDatamodel builds a datamodel client rooted at baseURL
// (e.g. http://host/datamodel/api).
func NewDatamodel(baseURL string, cfg Config) *Datamodel {
	return &Datamodel{c: newClient(baseURL, cfg)}
}

var _ core.DatamodelClient = (*Datamodel)(nil)

type wireTSRef struct {
	TSUID string `json:"tsuid"`
	FID   string `json:"funcId"`
}

type wireDataset struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TSList      []wireTSRef `json:"tsList"`
}

func (d *Datamodel) DatasetCreate(ctx context.Context, name, description string, tsuids []string) error {
	body := struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		TSUIDs      []string `json:"tsuidList"`
	}{name, description, tsuids}
	return d.c.do(ctx, http.MethodPost, "/dataset", nil, body, nil)
}

func (d *Datamodel) DatasetRead(ctx context.Context, name string) (core.DatasetRecord, error) {
	var wire wireDataset
	if err := d.c.do(ctx, http.MethodGet, "/dataset/"+url.PathEscape(name), nil, nil, &wire); err != nil {
		return core.DatasetRecord{}, err
	}
	rec := core.DatasetRecord{Name: name, Description: wire.Description}
	for _, ref := range wire.TSList {
		rec.TS = append(rec.TS, core.TSRef{TSUID: ref.TSUID, FID: ref.FID})
	}
	return rec, nil
}

func (d *Datamodel) DatasetDelete(ctx context.Context, name string, deep bool) error {
	var query url.Values
	if deep {
		query = url.Values{"deep": {"true"}}
	}
	return d.c.do(ctx, http.MethodDelete, "/dataset/"+url.PathEscape(name), query, nil, nil)
}

func (d *Datamodel) DatasetList(ctx context.Context) ([]core.DatasetSummary, error) {
	var wire []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := d.c.do(ctx, http.MethodGet, "/dataset", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]core.DatasetSummary, 0, len(wire))
	for _, w := range wire {
		out = append(out, core.DatasetSummary{Name: w.Name, Description: w.Description})
	}
	return out, nil
}

func (d *Datamodel) TSList(ctx context.Context) ([]core.TSRef, error) {
	var wire []wireTSRef
	if err := d.c.do(ctx, http.MethodGet, "/metadata/funcId", nil, nil, &wire); err != nil {
		if core.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]core.TSRef, 0, len(wire))
	for _, w := range wire {
		out = append(out, core.TSRef{TSUID: w.TSUID, FID: w.FID})
	}
	return out, nil
}

func (d *Datamodel) TSDelete(ctx context.Context, tsuid string) error {
	return d.c.do(ctx, http.MethodDelete, "/ts/"+url.PathEscape(tsuid), nil, nil, nil)
}

func (d *Datamodel) TSFromMetadata(ctx context.Context, constraint map[string][]string) ([]string, error) {
	var out []string
	if err := d.c.do(ctx, http.MethodPost, "/metadata/tsmatch", nil, constraint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Datamodel) FIDCreate(ctx context.Context, tsuid, fid string) error {
	path := "/metadata/funcId/" + url.PathEscape(tsuid) + "/" + url.PathEscape(fid)
	return d.c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

func (d *Datamodel) FIDFromTSUID(ctx context.Context, tsuid string) (string, error) {
	var wire wireTSRef
	if err := d.c.do(ctx, http.MethodGet, "/metadata/funcId/"+url.PathEscape(tsuid), nil, nil, &wire); err != nil {
		return "", err
	}
	return wire.FID, nil
}

func (d *Datamodel) TSUIDFromFID(ctx context.Context, fid string) (string, error) {
	var wire wireTSRef
	query := url.Values{"funcId": {fid}}
	if err := d.c.do(ctx, http.MethodGet, "/metadata/funcId", query, nil, &wire); err != nil {
		return "", err
	}
	if wire.TSUID == "" {
		return "", core.NotFoundf("no tsuid for fid %q", fid)
	}
	return wire.TSUID, nil
}

type wireMetaEntry struct {
	Value string `json:"value"`
	DType string `json:"dtype"`
}

func (d *Datamodel) MetadataUpsert(ctx context.Context, tsuid, name, value string, dtype core.MDType) error {
	path := "/metadata/" + url.PathEscape(tsuid) + "/" + url.PathEscape(name)
	body := wireMetaEntry{Value: value, DType: string(dtype)}
	return d.c.do(ctx, http.MethodPut, path, nil, body, nil)
}

func (d *Datamodel) MetadataDelete(ctx context.Context, tsuid, name string) error {
	path := "/metadata/" + url.PathEscape(tsuid) + "/" + url.PathEscape(name)
	return d.c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (d *Datamodel) MetadataFetch(ctx context.Context, tsuids []string) (map[string]map[string]core.MetaEntry, error) {
	body := struct {
		TSUIDs []string `json:"tsuids"`
	}{tsuids}
	wire := make(map[string]map[string]wireMetaEntry)
	if err := d.c.do(ctx, http.MethodPost, "/metadata/list", nil, body, &wire); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]core.MetaEntry, len(wire))
	for tsuid, bag := range wire {
		entries := make(map[string]core.MetaEntry, len(bag))
		for name, e := range bag {
			entries[name] = core.MetaEntry{Value: e.Value, DType: core.MDType(e.DType)}
		}
		out[tsuid] = entries
	}
	// The service answers 200 with missing keys for unknown TSUIDs.
	for _, tsuid := range tsuids {
		if _, ok := out[tsuid]; !ok {
			return nil, core.NotFoundf("timeseries %s not found", tsuid)
		}
	}
	return out, nil
}

type wireTableColumn struct {
	Name  string `json:"name"`
	DType string `json:"dtype,omitempty"`
}

type wireTable struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Columns     []wireTableColumn `json:"columns"`
	Rows        [][]string        `json:"rows"`
}

func toWireTable(t core.TableRecord) wireTable {
	w := wireTable{Name: t.Name, Title: t.Title, Description: t.Description, Rows: t.Rows}
	for _, c := range t.Columns {
		w.Columns = append(w.Columns, wireTableColumn{Name: c.Name, DType: string(c.DType)})
	}
	return w
}

func fromWireTable(w wireTable) core.TableRecord {
	t := core.TableRecord{Name: w.Name, Title: w.Title, Description: w.Description, Rows: w.Rows}
	for _, c := range w.Columns {
		t.Columns = append(t.Columns, core.TableColumn{Name: c.Name, DType: core.MDType(c.DType)})
	}
	return t
}

func (d *Datamodel) TableCreate(ctx context.Context, t core.TableRecord) error {
	return d.c.do(ctx, http.MethodPost, "/table", nil, toWireTable(t), nil)
}

func (d *Datamodel) TableRead(ctx context.Context, name string) (core.TableRecord, error) {
	var wire wireTable
	if err := d.c.do(ctx, http.MethodGet, "/table/"+url.PathEscape(name), nil, nil, &wire); err != nil {
		return core.TableRecord{}, err
	}
	return fromWireTable(wire), nil
}

func (d *Datamodel) TableDelete(ctx context.Context, name string) error {
	return d.c.do(ctx, http.MethodDelete, "/table/"+url.PathEscape(name), nil, nil, nil)
}

func (d *Datamodel) TableList(ctx context.Context) ([]core.TableSummary, error) {
	var wire []wireTable
	if err := d.c.do(ctx, http.MethodGet, "/table", nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]core.TableSummary, 0, len(wire))
	for _, w := range wire {
		out = append(out, core.TableSummary{Name: w.Name, Title: w.Title, Description: w.Description})
	}
	return out, nil
}

func (d *Datamodel) ResultList(ctx context.Context, pid string) ([]core.ProcessResult, error) {
	var wire []struct {
		ID        int    `json:"id"`
		ProcessID string `json:"processId"`
		Name      string `json:"name"`
		DataType  string `json:"dataType"`
	}
	if err := d.c.do(ctx, http.MethodGet, "/processdata/"+url.PathEscape(pid), nil, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]core.ProcessResult, 0, len(wire))
	for _, w := range wire {
		out = append(out, core.ProcessResult{
			ID:        strconv.Itoa(w.ID),
			ProcessID: w.ProcessID,
			Name:      w.Name,
			Type:      w.DataType,
		})
	}
	return out, nil
}

func (d *Datamodel) ResultRead(ctx context.Context, rid string) ([]byte, error) {
	return d.c.doRaw(ctx, http.MethodGet, "/processdata/id/download/"+url.PathEscape(rid))
}
