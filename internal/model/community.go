package model

import "time"

// Community is a standalone named grouping with its division metadata. The
// suggestion list merges these with ad-hoc community strings found on
// records.
//
// LegacyRegion: very old files stored the AGA division under a "region" key.
// The normaliser moves it across to AGADivision; it is never written back.
type Community struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AGADivision  *Option   `json:"agaDivision,omitempty"`
	GSDivision   *Option   `json:"gsDivision,omitempty"`
	LegacyRegion *Option   `json:"region,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a deep copy, same contract as Record.Clone.
func (c Community) Clone() Community {
	out := c
	out.AGADivision = cloneOption(c.AGADivision)
	out.GSDivision = cloneOption(c.GSDivision)
	out.LegacyRegion = cloneOption(c.LegacyRegion)
	return out
}

// CloneCommunities deep-copies a whole collection.
func CloneCommunities(communities []Community) []Community {
	if communities == nil {
		return nil
	}
	out := make([]Community, len(communities))
	for i := range communities {
		out[i] = communities[i].Clone()
	}
	return out
}
