package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nac-planner/internal/types"
)

func TestCheckForbiddenCommands_NoCommands(t *testing.T) {
	violations := CheckForbiddenCommands("line vty 0 4\n transport input telnet\n", "!", nil)
	assert.Empty(t, violations)
}

func TestCheckForbiddenCommands_Found(t *testing.T) {
	content := `aaa new-model
line vty 0 4
 transport   input TELNET
snmp-server community public RO
`
	violations := CheckForbiddenCommands(content, "!", DefaultForbiddenCommands)
	require.Len(t, violations, 2)

	assert.Equal(t, "forbidden_command", violations[0].Type)
	assert.Equal(t, types.SeverityError, violations[0].Severity)
	require.NotNil(t, violations[0].LineNumber)
	assert.Equal(t, 3, *violations[0].LineNumber)
	assert.Equal(t, "transport   input TELNET", violations[0].Command)
	assert.Contains(t, violations[0].Details, "telnet management")

	require.NotNil(t, violations[1].LineNumber)
	assert.Equal(t, 4, *violations[1].LineNumber)
}

func TestCheckForbiddenCommands_CommentsIgnored(t *testing.T) {
	content := "! never use transport input telnet\n# snmp-server community public\n"

	violations := CheckForbiddenCommands(content, "!", DefaultForbiddenCommands)
	require.Len(t, violations, 1)
	assert.Equal(t, 2, *violations[0].LineNumber)
}

func TestCheckForbiddenCommands_OnePerLine(t *testing.T) {
	content := "snmp-server community public key cisco\n"
	violations := CheckForbiddenCommands(content, "!", DefaultForbiddenCommands)
	assert.Len(t, violations, 1)
}

func TestCheckForbiddenCommands_DefaultSeverity(t *testing.T) {
	violations := CheckForbiddenCommands("debug all\n", "!", []ForbiddenCommand{{Phrase: "debug all", Reason: "noisy"}})
	require.Len(t, violations, 1)
	assert.Equal(t, types.SeverityError, violations[0].Severity)
}
