package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nac-planner/internal/config"
)

const testLibraryJSON = `{
  "pain_points": [
    {"id": "pp-visibility", "title": "Limited Device Visibility", "category": "visibility", "severity": "high"}
  ],
  "use_cases": [
    {"id": "uc-guest", "name": "Guest Access", "category": "guest"},
    {"id": "uc-iot", "name": "IoT Device Profiling", "category": "iot_security", "tags": ["iot"]},
    {"id": "uc-byod", "name": "Enterprise BYOD Onboarding", "category": "byod"}
  ],
  "requirements": [
    {"id": "rq-seg", "title": "Network Segmentation", "category": "segmentation", "priority": "high"},
    {"id": "rq-hipaa", "title": "HIPAA Compliance", "category": "compliance", "priority": "critical"}
  ]
}`

const testIntakeJSON = `{"organization": {"name": "St. Mary's", "industry": "healthcare", "total_users": "1200", "pain_points": ["IoT device visibility gaps"]}}`

// writeFile writes content under the test's temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command in-process with args and returns everything
// written to stdout and stderr. Flags and environment are reset first so
// tests do not leak state into each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "NAC_LIBRARY_PATH", "GEMINI_API_KEY", "NAC_VERBOSE", "PORT", "LIBRARY_CACHE_TTL"} {
		t.Setenv(key, "")
	}
	resetFlags(rootCmd)
	appConfig = config.Config{}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(parseSliceDefault(f.DefValue))
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func parseSliceDefault(def string) []string {
	def = strings.TrimSuffix(strings.TrimPrefix(def, "["), "]")
	if def == "" {
		return nil
	}
	return strings.Split(def, ",")
}
