// Package recommend derives suggested library additions from project intake data
// and tracks which suggestions a planning session has applied or dismissed.
package recommend

import (
	"fmt"
	"strings"

	"github.com/jonathan/nac-planner/internal/types"
)

// Trigger names the slice of intake data a rule inspects.
type Trigger string

const (
	TriggerIndustry        Trigger = "industry"
	TriggerTotalUsers      Trigger = "total_users"
	TriggerPainPoints      Trigger = "pain_points"
	TriggerVendorEcosystem Trigger = "vendor_ecosystem"
)

// Rule is one row of the recommendation table: a predicate over intake data
// paired with a factory for the recommendation it produces.
//
// Match returns the pieces of intake that caused the rule to fire (an industry
// name, a user count, matching pain-point titles, vendor names). Build receives
// that evidence; the rule's ID, Type and Priority are stamped onto its result.
type Rule struct {
	ID       string
	Trigger  Trigger
	Type     types.RecommendationType
	Priority types.Priority
	Match    func(intake *types.IntakeData) ([]string, bool)
	Build    func(evidence []string) types.Recommendation
}

// Evaluate runs the rule against intake.
func (r Rule) Evaluate(intake *types.IntakeData) (types.Recommendation, bool) {
	if intake == nil || r.Match == nil || r.Build == nil {
		return types.Recommendation{}, false
	}
	evidence, ok := r.Match(intake)
	if !ok {
		return types.Recommendation{}, false
	}
	rec := r.Build(evidence)
	rec.ID = r.ID
	rec.Type = r.Type
	rec.Priority = r.Priority
	return rec, true
}

// defaultRules is the recommendation table, in evaluation order.
var defaultRules = []Rule{
	{
		ID:       "healthcare_hipaa",
		Trigger:  TriggerIndustry,
		Type:     types.RecommendationRequirement,
		Priority: types.PriorityCritical,
		Match:    industryIs("healthcare"),
		Build: func([]string) types.Recommendation {
			return types.Recommendation{
				Title:       "HIPAA Compliance",
				Description: "Enforce access controls and audit logging that satisfy HIPAA safeguards for systems handling patient data.",
				Reason:      "Healthcare organizations must protect ePHI under HIPAA",
				Category:    "compliance",
				Actionable:  true,
			}
		},
	},
	{
		ID:       "finance_pci",
		Trigger:  TriggerIndustry,
		Type:     types.RecommendationRequirement,
		Priority: types.PriorityCritical,
		Match:    industryIs("finance"),
		Build: func([]string) types.Recommendation {
			return types.Recommendation{
				Title:       "PCI-DSS Compliance",
				Description: "Isolate the cardholder data environment and restrict access to authorized, compliant endpoints.",
				Reason:      "Financial organizations processing card data must meet PCI-DSS",
				Category:    "compliance",
				Actionable:  true,
			}
		},
	},
	{
		ID:       "government_security",
		Trigger:  TriggerIndustry,
		Type:     types.RecommendationUseCase,
		Priority: types.PriorityHigh,
		Match:    industryIs("government"),
		Build: func([]string) types.Recommendation {
			return types.Recommendation{
				Title:       "Government Security Framework",
				Description: "Align NAC policy with NIST 800-53 and FedRAMP controls, including strong device authentication.",
				Reason:      "Government agencies operate under federal security frameworks",
				Category:    "security",
				Actionable:  true,
			}
		},
	},
	{
		ID:       "enterprise_byod",
		Trigger:  TriggerTotalUsers,
		Type:     types.RecommendationUseCase,
		Priority: types.PriorityHigh,
		Match:    usersAbove(1000),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:       "Enterprise BYOD",
				Description: "Self-service onboarding and certificate provisioning for personal devices at scale.",
				Reason:      fmt.Sprintf("An organization with %s users needs a managed BYOD program", first(evidence)),
				Category:    "byod",
				Actionable:  true,
			}
		},
	},
	{
		ID:       "network_segmentation",
		Trigger:  TriggerTotalUsers,
		Type:     types.RecommendationRequirement,
		Priority: types.PriorityMedium,
		Match:    usersAbove(500),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:       "Network Segmentation",
				Description: "Dynamic VLAN or SGT assignment to separate user, guest and device populations.",
				Reason:      fmt.Sprintf("With %s users, segmentation limits lateral movement", first(evidence)),
				Category:    "segmentation",
				Actionable:  true,
			}
		},
	},
	{
		ID:       "iot_management",
		Trigger:  TriggerPainPoints,
		Type:     types.RecommendationUseCase,
		Priority: types.PriorityHigh,
		Match:    painPointMentions("iot", "device"),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:        "IoT Device Profiling",
				Description:  "Automatically fingerprint and classify headless and IoT devices and assign them least-privilege policy.",
				Reason:       fmt.Sprintf("Pain point %q indicates unmanaged devices on the network", first(evidence)),
				Category:     "iot_security",
				Actionable:   true,
				RelatedItems: evidence,
			}
		},
	},
	{
		ID:       "network_visibility",
		Trigger:  TriggerPainPoints,
		Type:     types.RecommendationUseCase,
		Priority: types.PriorityHigh,
		Match:    painPointMentions("visibility", "discovery"),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:        "Network Discovery",
				Description:  "Continuous discovery and inventory of every endpoint connected to wired, wireless and VPN access.",
				Reason:       fmt.Sprintf("Pain point %q indicates limited network visibility", first(evidence)),
				Category:     "visibility",
				Actionable:   true,
				RelatedItems: evidence,
			}
		},
	},
	{
		ID:       "compliance_automation",
		Trigger:  TriggerPainPoints,
		Type:     types.RecommendationRequirement,
		Priority: types.PriorityMedium,
		Match:    painPointMentions("compliance", "audit"),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:        "Automated Compliance Reporting",
				Description:  "Scheduled posture and access reports mapped to the organization's compliance controls.",
				Reason:       fmt.Sprintf("Pain point %q indicates manual compliance effort", first(evidence)),
				Category:     "compliance",
				Actionable:   true,
				RelatedItems: evidence,
			}
		},
	},
	{
		ID:       "cisco_integration",
		Trigger:  TriggerVendorEcosystem,
		Type:     types.RecommendationRequirement,
		Priority: types.PriorityMedium,
		Match:    vendorMentions("cisco"),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:        "Cisco ISE Integration",
				Description:  "Integrate with Cisco ISE and network devices for RADIUS, CoA and pxGrid context sharing.",
				Reason:       fmt.Sprintf("Existing Cisco infrastructure (%s)", strings.Join(evidence, ", ")),
				Category:     "integration",
				Actionable:   true,
				RelatedItems: evidence,
			}
		},
	},
	{
		ID:       "azure_integration",
		Trigger:  TriggerVendorEcosystem,
		Type:     types.RecommendationRequirement,
		Priority: types.PriorityMedium,
		Match:    vendorMentions("microsoft", "azure ad"),
		Build: func(evidence []string) types.Recommendation {
			return types.Recommendation{
				Title:        "Azure AD Integration",
				Description:  "Use Azure AD (Entra ID) as the identity source for user and group based access policy.",
				Reason:       fmt.Sprintf("Existing Microsoft identity platform (%s)", strings.Join(evidence, ", ")),
				Category:     "integration",
				Actionable:   true,
				RelatedItems: evidence,
			}
		},
	},
}

// Rules returns a copy of the default recommendation table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// industryIs fires when organization.industry equals name, ignoring case.
func industryIs(name string) func(*types.IntakeData) ([]string, bool) {
	return func(intake *types.IntakeData) ([]string, bool) {
		if intake.Organization == nil {
			return nil, false
		}
		industry := strings.TrimSpace(intake.Organization.Industry)
		if !strings.EqualFold(industry, name) {
			return nil, false
		}
		return []string{industry}, true
	}
}

// usersAbove fires when organization.total_users parses to more than threshold.
func usersAbove(threshold int) func(*types.IntakeData) ([]string, bool) {
	return func(intake *types.IntakeData) ([]string, bool) {
		if intake.Organization == nil {
			return nil, false
		}
		n, ok := intake.Organization.TotalUsers.Int()
		if !ok || n <= threshold {
			return nil, false
		}
		return []string{fmt.Sprintf("%d", n)}, true
	}
}

// painPointMentions fires when any pain-point title contains one of keywords.
// Every matching title is returned as evidence.
func painPointMentions(keywords ...string) func(*types.IntakeData) ([]string, bool) {
	return func(intake *types.IntakeData) ([]string, bool) {
		var matched []string
		for _, title := range intake.Organization.PainPointTitles() {
			if containsAny(title, keywords) {
				matched = append(matched, title)
			}
		}
		return matched, len(matched) > 0
	}
}

// vendorMentions fires when any vendor in the ecosystem contains one of keywords.
func vendorMentions(keywords ...string) func(*types.IntakeData) ([]string, bool) {
	return func(intake *types.IntakeData) ([]string, bool) {
		var matched []string
		for _, vendor := range intake.VendorEcosystem.Vendors() {
			if containsAny(vendor, keywords) {
				matched = append(matched, vendor)
			}
		}
		return matched, len(matched) > 0
	}
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func first(evidence []string) string {
	if len(evidence) == 0 {
		return ""
	}
	return evidence[0]
}
