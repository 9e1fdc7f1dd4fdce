// Package types provides type definitions for structured data used throughout the NAC planner.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

// IntakeData is the project-scoping document produced by the intake form.
// Decoding is lenient: a field of the wrong JSON type is treated as absent
// instead of failing the whole document.
type IntakeData struct {
	Organization    *Organization   `json:"organization,omitempty"`
	VendorEcosystem VendorEcosystem `json:"vendor_ecosystem,omitempty"`
}

// Organization describes the customer organization being scoped.
type Organization struct {
	Name       string           `json:"name,omitempty"`
	Industry   string           `json:"industry,omitempty"`
	TotalUsers UserCount        `json:"total_users,omitempty"`
	SiteCount  UserCount        `json:"site_count,omitempty"`
	PainPoints []PainPointEntry `json:"pain_points,omitempty"`
}

// VendorEcosystem maps an infrastructure category (e.g. "wired", "identity")
// to the vendor names in use for that category.
type VendorEcosystem map[string][]string

// UserCount holds a count that the intake form may send as a JSON number or string.
type UserCount struct {
	raw json.RawMessage
}

// PainPointEntry is a pain point as captured by the intake form: either a
// plain string or an object with a title field.
type PainPointEntry struct {
	raw json.RawMessage
}

// UsersText returns a UserCount carrying a string value, as a text input would send it.
func UsersText(s string) UserCount {
	b, _ := json.Marshal(s)
	return UserCount{raw: b}
}

// UsersNumber returns a UserCount carrying a JSON number.
func UsersNumber(n int) UserCount {
	return UserCount{raw: json.RawMessage(strconv.Itoa(n))}
}

// IsSet reports whether the count was present in the document.
func (u UserCount) IsSet() bool {
	return len(u.raw) > 0 && !bytes.Equal(u.raw, []byte("null"))
}

// Int parses the count as a base-10 integer. Numbers are truncated toward zero
// and values outside the int range saturate at its bounds.
// Returns false when the value is absent or not numeric.
func (u UserCount) Int() (int, bool) {
	if !u.IsSet() {
		return 0, false
	}

	var s string
	if err := json.Unmarshal(u.raw, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return n, true
			}
			return 0, false
		}
		return n, true
	}

	var f float64
	if err := json.Unmarshal(u.raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		switch {
		case f >= math.MaxInt:
			return math.MaxInt, true
		case f <= math.MinInt:
			return math.MinInt, true
		}
		return int(f), true
	}

	return 0, false
}

// String returns the count as entered, or "" when absent.
func (u UserCount) String() string {
	if !u.IsSet() {
		return ""
	}
	var s string
	if err := json.Unmarshal(u.raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(u.raw)
}

// MarshalJSON writes the original value back out.
func (u UserCount) MarshalJSON() ([]byte, error) {
	if !u.IsSet() {
		return []byte("null"), nil
	}
	return u.raw, nil
}

// UnmarshalJSON keeps the raw value; interpretation happens in Int.
func (u *UserCount) UnmarshalJSON(data []byte) error {
	u.raw = append(u.raw[:0], data...)
	return nil
}

// PainPointText returns an entry holding a plain string.
func PainPointText(title string) PainPointEntry {
	b, _ := json.Marshal(title)
	return PainPointEntry{raw: b}
}

// PainPointObject returns an entry holding an object with a title field.
func PainPointObject(title string) PainPointEntry {
	b, _ := json.Marshal(map[string]string{"title": title})
	return PainPointEntry{raw: b}
}

// Title normalizes the entry to its title string.
// Returns false for entries that are neither a string nor an object with a string title.
func (p PainPointEntry) Title() (string, bool) {
	if len(p.raw) == 0 || bytes.Equal(p.raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(p.raw, &s); err == nil {
		return s, true
	}

	var obj struct {
		Title *string `json:"title"`
	}
	if err := json.Unmarshal(p.raw, &obj); err == nil && obj.Title != nil {
		return *obj.Title, true
	}

	return "", false
}

// MarshalJSON writes the original value back out.
func (p PainPointEntry) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// UnmarshalJSON keeps the raw value; interpretation happens in Title.
func (p *PainPointEntry) UnmarshalJSON(data []byte) error {
	p.raw = append(p.raw[:0], data...)
	return nil
}

// PainPointTitles returns the normalized titles of all pain points, skipping
// entries that carry no title.
func (o *Organization) PainPointTitles() []string {
	if o == nil {
		return nil
	}
	titles := make([]string, 0, len(o.PainPoints))
	for _, entry := range o.PainPoints {
		if title, ok := entry.Title(); ok {
			titles = append(titles, title)
		}
	}
	return titles
}

// UnmarshalJSON decodes the intake document, dropping fields of the wrong type.
func (d *IntakeData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = IntakeData{}

	if raw, ok := fields["organization"]; ok {
		var org Organization
		if err := json.Unmarshal(raw, &org); err == nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			d.Organization = &org
		}
	}

	if raw, ok := fields["vendor_ecosystem"]; ok {
		_ = json.Unmarshal(raw, &d.VendorEcosystem)
	}

	return nil
}

// UnmarshalJSON decodes an organization, dropping fields of the wrong type.
func (o *Organization) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*o = Organization{}

	decodeString(fields["name"], &o.Name)
	decodeString(fields["industry"], &o.Industry)

	if raw, ok := fields["total_users"]; ok {
		_ = o.TotalUsers.UnmarshalJSON(raw)
	}
	if raw, ok := fields["site_count"]; ok {
		_ = o.SiteCount.UnmarshalJSON(raw)
	}

	if raw, ok := fields["pain_points"]; ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			o.PainPoints = make([]PainPointEntry, 0, len(entries))
			for _, entry := range entries {
				o.PainPoints = append(o.PainPoints, PainPointEntry{raw: entry})
			}
		}
	}

	return nil
}

// UnmarshalJSON decodes the category map. Non-string vendor names are skipped,
// and a bare string is accepted as a one-element list.
func (v *VendorEcosystem) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	result := make(VendorEcosystem, len(fields))
	for category, raw := range fields {
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			result[category] = []string{single}
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		names := make([]string, 0, len(items))
		for _, item := range items {
			var name string
			if err := json.Unmarshal(item, &name); err == nil {
				names = append(names, name)
			}
		}
		result[category] = names
	}

	*v = result
	return nil
}

// Vendors flattens the ecosystem into a single list, ordered by category name
// so that callers see a deterministic sequence.
func (v VendorEcosystem) Vendors() []string {
	if len(v) == 0 {
		return nil
	}
	categories := make([]string, 0, len(v))
	for category := range v {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var vendors []string
	for _, category := range categories {
		vendors = append(vendors, v[category]...)
	}
	return vendors
}

func decodeString(raw json.RawMessage, dst *string) {
	if len(raw) == 0 {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*dst = s
	}
}
