// Package normalize converts the heterogeneous record shapes found in data
// files into the canonical in-memory form. Files written by older versions
// store location fields as bare strings; current files store structured
// {value,label} pairs. Every load funnels through here, and normalising an
// already-canonical record is a no-op, so the rest of the code never has to
// re-inspect which shape it got.
package normalize

import (
	"time"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/refdata"
)

// Normalizer resolves raw option values against the reference lists.
type Normalizer struct {
	lists refdata.Lists
	now   func() time.Time
}

// New creates a Normalizer over the given reference lists.
func New(lists refdata.Lists) *Normalizer {
	return &Normalizer{lists: lists, now: time.Now}
}

// WithClock overrides the time source. Tests use this to pin the RegID
// sequence and community timestamps.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Record canonicalises one record:
//
//   - each location field: already-structured options pass through untouched;
//     a legacy bare value is looked up in its reference list (by value or
//     label) and adopts the canonical pair, or is kept as {raw, raw} when the
//     list doesn't know it; empty values become nil.
//   - a missing RegID is generated from the resolved region and GS division
//     and assigned permanently.
//   - duplicate community entries are dropped (first occurrence wins).
//
// Idempotent: Record(Record(r)) == Record(r).
func (n *Normalizer) Record(r model.Record) model.Record {
	out := r.Clone()

	out.Region = n.resolve(out.Region, n.lists.Regions)
	out.AGADivision = n.resolve(out.AGADivision, n.lists.AGADivisions)
	out.GSDivision = n.resolve(out.GSDivision, n.lists.GSDivisions)
	out.PoolingBooth = n.resolve(out.PoolingBooth, n.lists.PoolingBooths)

	out.Communities = dedupe(out.Communities)

	if out.RegID == "" {
		out.RegID = GenerateRegID(out.Region, out.GSDivision, n.now())
	}

	return out
}

// Community canonicalises one community entry. The very old shape stored the
// AGA division under a "region" key; that moves across here. A missing
// createdAt gets the current time, matching what the original assigned on
// first load.
func (n *Normalizer) Community(c model.Community) model.Community {
	out := c.Clone()

	if out.LegacyRegion != nil && out.AGADivision == nil {
		out.AGADivision = out.LegacyRegion
	}
	out.LegacyRegion = nil

	out.AGADivision = n.resolve(out.AGADivision, n.lists.AGADivisions)
	out.GSDivision = n.resolve(out.GSDivision, n.lists.GSDivisions)

	if out.CreatedAt.IsZero() {
		out.CreatedAt = n.now()
	}

	return out
}

// ResolveField resolves one raw selector submission (always a bare value from
// a form) against a reference list, synthesising {raw, raw} for unknown
// values. Used by the service layer when building records from requests.
func ResolveField(raw string, options []model.Option) *model.Option {
	if raw == "" {
		return nil
	}
	if found := model.FindOption(options, raw); found != nil {
		return found
	}
	return &model.Option{Value: raw, Label: raw}
}

// Lists exposes the reference lists the normaliser was built over, so the
// service layer resolves form submissions against the same data.
func (n *Normalizer) Lists() refdata.Lists {
	return n.lists
}

func (n *Normalizer) resolve(field *model.Option, options []model.Option) *model.Option {
	if field == nil {
		return nil
	}
	if field.Resolved() {
		return field
	}
	return ResolveField(field.Value, options)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
