package model

import "time"

// Priority levels a record can carry. Stored as strings because that is what
// the form selector submits and what existing data files contain.
var PriorityLevels = []string{"1", "2", "3", "4", "5"}

// ValidPriority reports whether p is one of the enumerated priority levels.
func ValidPriority(p string) bool {
	for _, level := range PriorityLevels {
		if p == level {
			return true
		}
	}
	return false
}

// Record is one registration entry.
//
// ID is the opaque storage key, generated once and immutable. NIC is the
// national identity-card number — unique across records as a business rule,
// but never used as a lookup key. RegID is the derived human-readable tag;
// once assigned it is never regenerated.
//
// The four location fields are pointers so an absent field marshals as null
// rather than an empty {"value":"","label":""} pair.
type Record struct {
	ID               string    `json:"id"`
	NIC              string    `json:"nic"`
	Name             string    `json:"name"`
	DOB              string    `json:"dob"` // YYYY-MM-DD as submitted by the date input
	PoliticalPartyID string    `json:"politicalPartyId"`
	Priority         string    `json:"priority"`
	RegID            string    `json:"RegID,omitempty"`
	Mobile1          string    `json:"mobile1"`
	Mobile2          string    `json:"mobile2"`
	WhatsApp         string    `json:"whatsapp"`
	HomeNumber       string    `json:"homeNumber"`
	Address          string    `json:"address"`
	Region           *Option   `json:"region"`
	AGADivision      *Option   `json:"agaDivision"`
	GSDivision       *Option   `json:"gsDivision"`
	PoolingBooth     *Option   `json:"poolingBooth"`
	Communities      []string  `json:"communities"`
	Connectivity     string    `json:"connectivity"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. The services hand copies across their boundary
// so callers can never mutate the in-memory working set behind their back.
func (r Record) Clone() Record {
	out := r
	out.Region = cloneOption(r.Region)
	out.AGADivision = cloneOption(r.AGADivision)
	out.GSDivision = cloneOption(r.GSDivision)
	out.PoolingBooth = cloneOption(r.PoolingBooth)
	if r.Communities != nil {
		out.Communities = append([]string(nil), r.Communities...)
	}
	return out
}

// CloneRecords deep-copies a whole collection. Used for the last-known-good
// snapshots the store keeps against load and save failures.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}

func cloneOption(o *Option) *Option {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
