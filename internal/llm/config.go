// Package llm provides model-tier configuration and a provider-neutral client
// used by the configuration wizard and business analysis features.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short classification and summarization
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as config analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for device configuration generation and business analysis
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Tiers lists every tier, cheapest first.
var Tiers = []ModelTier{TierLite, TierStandard, TierAdvanced}

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Validate checks that the provider is supported and that every tier
// resolves to a model name.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, "":
	default:
		return fmt.Errorf("unsupported LLM provider %q", c.Provider)
	}
	for _, tier := range Tiers {
		if strings.TrimSpace(c.GetModel(tier)) == "" {
			return fmt.Errorf("no model configured for tier %s", tier)
		}
	}
	return nil
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithOverrides applies non-empty per-tier model names on top of c.
func (c *Config) WithOverrides(lite, standard, advanced string) *Config {
	out := c
	if lite != "" {
		out = out.WithModel(TierLite, lite)
	}
	if standard != "" {
		out = out.WithModel(TierStandard, standard)
	}
	if advanced != "" {
		out = out.WithModel(TierAdvanced, advanced)
	}
	return out
}
