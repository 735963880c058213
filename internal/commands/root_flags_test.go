// internal/commands/root_flags_test.go
package tablechart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/tablechart/internal/appconfig"
	"github.com/mwiater/tablechart/internal/logging"
	"github.com/spf13/viper"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the root command at path for the duration of the test.
func useConfig(t *testing.T, path string) {
	t.Helper()
	prevCfgFile := cfgFile
	cfgFile = path
	viper.SetConfigFile(path)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range []string{"debug", "source", "headerMode", "logFile"} {
		resetFlag(name)
	}
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tablechart.log")
	configPath := writeTempConfig(t, `{"source": "from-config.csv", "headerMode": "normalize"}`)
	useConfig(t, configPath)

	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("source", "from-flag.csv")
	_ = rootCmd.PersistentFlags().Set("headerMode", "exact")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if !currentConfig.Debug || !logging.DebugEnabled() {
		t.Fatalf("expected debug to flow into config and logger: %+v", currentConfig)
	}
	if currentConfig.SourcePath() != "from-flag.csv" {
		t.Fatalf("expected flag source to override config, got %s", currentConfig.SourcePath())
	}
	if currentConfig.HeaderModeOrDefault() != appconfig.HeaderModeExact {
		t.Fatalf("expected exact header mode, got %s", currentConfig.HeaderModeOrDefault())
	}
	if currentConfig.LogFilePath() != logPath {
		t.Fatalf("expected log file %s, got %s", logPath, currentConfig.LogFilePath())
	}
}

func TestPersistentPreRunEConfigValues(t *testing.T) {
	configPath := writeTempConfig(t, `{"source": "from-config.csv", "metrics": {"missingKeyPolicy": "zero"}}`)
	useConfig(t, configPath)
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "tablechart.log"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.SourcePath() != "from-config.csv" {
		t.Fatalf("expected config source, got %s", currentConfig.SourcePath())
	}
	if currentConfig.MissingKeyPolicyOrDefault() != appconfig.PolicyZero {
		t.Fatalf("expected zero policy, got %s", currentConfig.MissingKeyPolicyOrDefault())
	}
}

func TestPersistentPreRunEInvalidConfig(t *testing.T) {
	configPath := writeTempConfig(t, `{"headerMode": "fuzzy"}`)
	useConfig(t, configPath)

	err := rootCmd.PersistentPreRunE(rootCmd, []string{})
	if err == nil {
		t.Fatalf("expected error for invalid header mode")
	}
	if !errors.Is(err, appconfig.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPersistentPreRunEMissingConfigFile(t *testing.T) {
	useConfig(t, filepath.Join(t.TempDir(), "absent.json"))
	if err := ensureConfigLoaded(); err != nil {
		t.Fatalf("expected a missing config file to be ignored, got %v", err)
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfig(t, configPath)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--debug", "--source", "numbers.csv", "--logFile", filepath.Join(t.TempDir(), "tablechart.log"), "show", "config"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:           true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
	if !strings.Contains(out, "Source:          numbers.csv") {
		t.Fatalf("expected source in output, got %s", out)
	}
	if !strings.Contains(out, "sum(A5, A20)") {
		t.Fatalf("expected default metric definitions in output, got %s", out)
	}
}
