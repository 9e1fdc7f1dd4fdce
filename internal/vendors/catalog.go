// Package vendors is the read-only catalog of network device vendors the
// configuration wizard can target.
package vendors

import (
	"fmt"
	"sort"
	"strings"
)

// Syntax identifies a configuration language family.
type Syntax string

const (
	SyntaxIOS     Syntax = "ios"     // Cisco IOS / IOS-XE
	SyntaxAOSCX   Syntax = "aoscx"   // Aruba AOS-CX
	SyntaxJunos   Syntax = "junos"   // Juniper Junos set syntax
	SyntaxFortiOS Syntax = "fortios" // Fortinet FortiOS / FortiSwitch
	SyntaxGeneric Syntax = "generic"
)

// CommentPrefix returns the line comment marker for the syntax.
func (s Syntax) CommentPrefix() string {
	switch s {
	case SyntaxIOS, SyntaxAOSCX:
		return "!"
	default:
		return "#"
	}
}

// Category groups vendors by the kind of equipment they ship.
type Category string

const (
	CategorySwitching Category = "switching"
	CategoryWireless  Category = "wireless"
	CategoryFirewall  Category = "firewall"
)

// Vendor is one catalog entry.
type Vendor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Syntax   Syntax   `json:"syntax"`
	Models   []string `json:"models"`
}

// SupportsModel reports whether model is a known model, case-insensitively.
// Vendors with no listed models accept any model.
func (v Vendor) SupportsModel(model string) bool {
	if len(v.Models) == 0 {
		return true
	}
	for _, m := range v.Models {
		if strings.EqualFold(m, model) {
			return true
		}
	}
	return false
}

var catalog = []Vendor{
	{ID: "cisco", Name: "Cisco", Category: CategorySwitching, Syntax: SyntaxIOS,
		Models: []string{"Catalyst 9200", "Catalyst 9300", "Catalyst 9400", "Catalyst 9500", "Catalyst 3850"}},
	{ID: "cisco-wlc", Name: "Cisco Wireless", Category: CategoryWireless, Syntax: SyntaxIOS,
		Models: []string{"Catalyst 9800-40", "Catalyst 9800-80", "Catalyst 9800-CL"}},
	{ID: "aruba", Name: "HPE Aruba Networking", Category: CategorySwitching, Syntax: SyntaxAOSCX,
		Models: []string{"CX 6100", "CX 6200", "CX 6300", "CX 6400", "CX 8360"}},
	{ID: "juniper", Name: "Juniper Networks", Category: CategorySwitching, Syntax: SyntaxJunos,
		Models: []string{"EX2300", "EX3400", "EX4300", "EX4400"}},
	{ID: "fortinet", Name: "Fortinet", Category: CategoryFirewall, Syntax: SyntaxFortiOS,
		Models: []string{"FortiGate 60F", "FortiGate 100F", "FortiSwitch 148F", "FortiSwitch 424E"}},
	{ID: "extreme", Name: "Extreme Networks", Category: CategorySwitching, Syntax: SyntaxGeneric,
		Models: []string{"5320", "5420", "5520"}},
	{ID: "dell", Name: "Dell Networking", Category: CategorySwitching, Syntax: SyntaxGeneric},
}

var byID = func() map[string]Vendor {
	m := make(map[string]Vendor, len(catalog))
	for _, v := range catalog {
		m[v.ID] = v
	}
	return m
}()

// Lookup returns the vendor with the given id, ignoring case and surrounding space.
func Lookup(id string) (Vendor, bool) {
	v, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	return v, ok
}

// Resolve is Lookup returning an error for unknown vendors.
func Resolve(id string) (Vendor, error) {
	v, ok := Lookup(id)
	if !ok {
		return Vendor{}, fmt.Errorf("unknown vendor %q (known: %s)", id, strings.Join(IDs(), ", "))
	}
	return v, nil
}

// All returns a copy of the catalog in display order.
func All() []Vendor {
	out := make([]Vendor, len(catalog))
	for i, v := range catalog {
		v.Models = append([]string(nil), v.Models...)
		out[i] = v
	}
	return out
}

// IDs returns the sorted vendor ids.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, v := range catalog {
		ids = append(ids, v.ID)
	}
	sort.Strings(ids)
	return ids
}

// ByCategory returns vendors in the given category, in display order.
func ByCategory(c Category) []Vendor {
	var out []Vendor
	for _, v := range All() {
		if v.Category == c {
			out = append(out, v)
		}
	}
	return out
}
