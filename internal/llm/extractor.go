package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON object a structured prompt asks the model to return.
type OutputSchema struct {
	Name        string        // Schema name (e.g., "ConfigAnalysis")
	Description string        // Task preamble
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "number"
	Description string // Description for the model
	Required    bool
}

// BuildStructuredPrompt constructs a prompt asking for JSON shaped like schema,
// followed by the input text in a quoted block.
func BuildStructuredPrompt(schema OutputSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Base every finding on the input, do not invent commands that are not present.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ConfigAnalysisSchema is the output schema for reviewing a device configuration.
func ConfigAnalysisSchema() OutputSchema {
	return OutputSchema{
		Name: "ConfigAnalysis",
		Description: `You are a senior network security engineer reviewing a network device configuration
for 802.1X / NAC readiness. Identify missing or insecure AAA, RADIUS, 802.1X, MAB and CoA settings.`,
		Fields: []SchemaField{
			{Name: "score", Type: "number", Description: "Readiness score from 0 to 100", Required: true},
			{Name: "summary", Type: "\"string\"", Description: "One paragraph overall assessment", Required: true},
			{
				Name:        "findings",
				Type:        "[{\"severity\": \"low|medium|high|critical\", \"title\": \"string\", \"detail\": \"string\", \"recommendation\": \"string\"}]",
				Description: "Individual issues ordered by severity",
				Required:    true,
			},
		},
	}
}
