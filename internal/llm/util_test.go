package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "json fence", input: "```json\n{\"score\": 80}\n```", want: `{"score": 80}`},
		{name: "bare fence", input: "```\n{\"score\": 80}\n```", want: `{"score": 80}`},
		{name: "fence with other language", input: "```javascript\n{\"score\": 80}\n```", want: `{"score": 80}`},
		{name: "plain object", input: `{"score": 80}`, want: `{"score": 80}`},
		{
			name:  "preamble before object",
			input: "I reviewed the switch configuration. Here's the result:\n\n{\"score\": 40, \"summary\": \"missing dot1x\"}",
			want:  `{"score": 40, "summary": "missing dot1x"}`,
		},
		{name: "preamble before array", input: "Findings:\n[\"coa\", \"mab\"]", want: `["coa", "mab"]`},
		{name: "trailing chatter", input: "{\"score\": 10}\n\nLet me know if you need the full config.", want: `{"score": 10}`},
		{name: "braces inside strings", input: `Result: {"detail": "use {vlan} per role", "ok": true} done`, want: `{"detail": "use {vlan} per role", "ok": true}`},
		{name: "escaped quote inside string", input: `{"detail": "quote \" then }"} tail`, want: `{"detail": "quote \" then }"}`},
		{name: "unbalanced falls back to input", input: `note: {"score": 1`, want: `note: {"score": 1`},
		{name: "no JSON at all", input: "  nothing to see  ", want: "nothing to see"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": [1, 2]}}`, extractJSONObject(`{"a": {"b": [1, 2]}} rest`))
	assert.Equal(t, `[[1], [2, [3]]]`, extractJSONArray(`[[1], [2, [3]]], trailing`))
	assert.Equal(t, `[{"id": "]"}]`, extractJSONArray(`[{"id": "]"}]`))
	assert.Empty(t, extractJSONObject(""))
	assert.Empty(t, extractJSONObject("[1]"))
	assert.Empty(t, extractJSONArray(`{"a": 1}`))
}

func TestCleanCodeBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "cisco fence", input: "```cisco\naaa new-model\n```", want: "aaa new-model"},
		{name: "bare fence", input: "```\ninterface Gi1/0/1\n```", want: "interface Gi1/0/1"},
		{name: "no fence", input: "  dot1x system-auth-control \n", want: "dot1x system-auth-control"},
		{name: "first line is content", input: "```aaa new-model here\nline2\n```", want: "aaa new-model here\nline2"},
		{name: "missing closing fence", input: "```junos\nset system radius-server 10.0.0.1", want: "set system radius-server 10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCodeBlock(tt.input))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"score\": 72}\n```", &out))
	assert.Equal(t, 72, out.Score)

	err := DecodeJSON("   ", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty JSON response")

	err = DecodeJSON("not json at all", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse model JSON")
}
