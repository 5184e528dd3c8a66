// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import (
	"encoding/json"
	"fmt"
)

// Option is one entry of a reference list (region, AGA/GS division, pooling
// booth): a stable Value plus the display Label shown in selectors.
//
// LEGACY SHAPES ON DISK:
// Older data files stored these fields as bare strings ("NR") instead of the
// structured {"value":"NR","label":"Northern"} pair. UnmarshalJSON accepts
// both. A bare string decodes with an empty Label, which is the marker the
// normaliser uses to know the field still needs resolving against the
// reference lists. Marshalling always emits the structured form, so a file
// round-trips to the canonical shape.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// optionAlias avoids infinite recursion inside UnmarshalJSON: the alias has
// the same fields but none of Option's methods.
type optionAlias Option

func (o *Option) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding legacy option string: %w", err)
		}
		o.Value = raw
		o.Label = ""
		return nil
	}

	var alias optionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("decoding option: %w", err)
	}
	*o = Option(alias)
	return nil
}

// Resolved reports whether the option already carries its display label.
// A legacy bare string decodes without one and must go through the normaliser.
func (o *Option) Resolved() bool {
	return o != nil && o.Label != ""
}

// Display returns the text shown for the option: label first, then value,
// then a dash placeholder. Mirrors how every table and export renders
// location fields.
func (o *Option) Display() string {
	switch {
	case o == nil:
		return "-"
	case o.Label != "":
		return o.Label
	case o.Value != "":
		return o.Value
	default:
		return "-"
	}
}

// FindOption looks candidate up in a reference list, matching either the
// stored value or the display label. Legacy files recorded whichever the
// form happened to submit, so lookup has to tolerate both.
func FindOption(options []Option, candidate string) *Option {
	if candidate == "" {
		return nil
	}
	for i := range options {
		if options[i].Value == candidate || options[i].Label == candidate {
			opt := options[i]
			return &opt
		}
	}
	return nil
}
