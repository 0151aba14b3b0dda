// Package export renders the whole equipment table as JSON or CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/storage"
)

// Supported formats. Anything other than FormatCSV is exported as JSON.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Columns is the table's declared column order. It must match the field
// order of domain.Equipment so both formats carry the same layout.
var Columns = []string{"id", "name", "type", "ip", "mac", "vlan", "location", "date_added"}

// Result is a rendered export.
type Result struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Exporter reads the full record set from a store.
type Exporter struct {
	store storage.Storage
}

// New creates a new Exporter.
func New(store storage.Storage) *Exporter {
	return &Exporter{store: store}
}

// Export renders every record. Filters never apply to exports.
func (e *Exporter) Export(ctx context.Context, format string) (*Result, error) {
	items, err := e.store.ListEquipment(ctx, domain.EquipmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading equipment: %w", err)
	}

	if format == FormatCSV {
		body, err := EncodeCSV(items)
		if err != nil {
			return nil, err
		}
		return &Result{Body: body, ContentType: "text/csv", Filename: "equipements.csv"}, nil
	}

	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding json export: %w", err)
	}
	return &Result{Body: body, ContentType: "application/json", Filename: "equipements.json"}, nil
}

// EncodeCSV writes a header row of Columns followed by one line per record.
// NULL columns become empty cells.
func EncodeCSV(items []*domain.Equipment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, eq := range items {
		if err := w.Write(Row(eq)); err != nil {
			return nil, fmt.Errorf("writing csv row %d: %w", eq.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Row returns the record's values in Columns order. Timestamps use the same
// RFC 3339 form as the JSON encoding.
func Row(eq *domain.Equipment) []string {
	return []string{
		strconv.FormatInt(eq.ID, 10),
		eq.Name,
		eq.Type,
		eq.IP,
		domain.StringValue(eq.MAC),
		domain.StringValue(eq.VLAN),
		domain.StringValue(eq.Location),
		eq.DateAdded.Format(time.RFC3339Nano),
	}
}
