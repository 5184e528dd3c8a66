// Package export renders filtered record sets to PDF: a tabular report over
// a chosen set of columns, and a card-style address list for mail runs. The
// package is pure — it takes an already-filtered snapshot of records and
// returns bytes — so the HTTP layer decides what goes in and where the file
// goes.
package export

import (
	"strings"
	"time"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
)

// Field describes one exportable column. Default marks the columns
// pre-selected in the field picker.
type Field struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

// Fields is the export column catalogue, in picker display order.
var Fields = []Field{
	{Key: "name", Label: "Name", Default: true},
	{Key: "nic", Label: "NIC", Default: true},
	{Key: "dob", Label: "Date of Birth"},
	{Key: "politicalPartyId", Label: "Party ID", Default: true},
	{Key: "priority", Label: "Priority"},
	{Key: "RegID", Label: "Reg ID"},
	{Key: "mobile1", Label: "Mobile 1", Default: true},
	{Key: "mobile2", Label: "Mobile 2"},
	{Key: "whatsapp", Label: "WhatsApp"},
	{Key: "homeNumber", Label: "Home Number"},
	{Key: "address", Label: "Address"},
	{Key: "region", Label: "Region"},
	{Key: "agaDivision", Label: "AGA Division"},
	{Key: "gsDivision", Label: "GS Division"},
	{Key: "poolingBooth", Label: "Pooling Booth"},
	{Key: "communities", Label: "Communities"},
	{Key: "connectivity", Label: "Connectivity"},
	{Key: "createdAt", Label: "Created At"},
	{Key: "updatedAt", Label: "Updated At"},
}

// FieldLabel returns the display label for a field key, or the key itself
// when it isn't in the catalogue.
func FieldLabel(key string) string {
	for _, f := range Fields {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}

// KnownField reports whether key is in the catalogue.
func KnownField(key string) bool {
	for _, f := range Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

const dateLayout = "02/01/2006"

// FieldValue projects one record field into its printable form. Location
// fields print their label (value as fallback), communities join with a
// comma, dates render as DD/MM/YYYY, and anything empty prints "-".
func FieldValue(r model.Record, key string) string {
	switch key {
	case "name":
		return orDash(r.Name)
	case "nic":
		return orDash(r.NIC)
	case "dob":
		if t, err := time.Parse("2006-01-02", r.DOB); err == nil {
			return t.Format(dateLayout)
		}
		return orDash(r.DOB)
	case "politicalPartyId":
		return orDash(r.PoliticalPartyID)
	case "priority":
		return orDash(r.Priority)
	case "RegID":
		return orDash(r.RegID)
	case "mobile1":
		return orDash(r.Mobile1)
	case "mobile2":
		return orDash(r.Mobile2)
	case "whatsapp":
		return orDash(r.WhatsApp)
	case "homeNumber":
		return orDash(r.HomeNumber)
	case "address":
		return orDash(r.Address)
	case "region":
		return r.Region.Display()
	case "agaDivision":
		return r.AGADivision.Display()
	case "gsDivision":
		return r.GSDivision.Display()
	case "poolingBooth":
		return r.PoolingBooth.Display()
	case "communities":
		if len(r.Communities) == 0 {
			return "-"
		}
		return strings.Join(r.Communities, ", ")
	case "connectivity":
		return orDash(r.Connectivity)
	case "createdAt":
		return formatTime(r.CreatedAt)
	case "updatedAt":
		return formatTime(r.UpdatedAt)
	default:
		return "-"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
