package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/priceflex/haml"
	"github.com/spf13/pflag"
)

func resetCLIStateForTest(t *testing.T) {
	t.Helper()

	defaults := haml.NewDefaultConfig()
	flagConfigFile = ""
	flagInputFile = ""
	flagOutputFile = ""
	flagURL = ""
	flagSelector = ""
	flagMarkdown = false
	flagERB = false
	flagXML = false
	flagTimeout = int(defaults.HTTPTimeout.Seconds())
	flagUserAgent = defaults.HTTPUserAgent
	flagDebug = false

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
}

func TestBuildRuntimeConfigUsesPositionalFile(t *testing.T) {
	resetCLIStateForTest(t)

	cfg, err := buildRuntimeConfig(rootCmd, []string{"page.html"})
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}

	if cfg.App.InputFile != "page.html" {
		t.Fatalf("expected positional input file, got %q", cfg.App.InputFile)
	}
}

func TestBuildRuntimeConfigFlagOverridesPositional(t *testing.T) {
	resetCLIStateForTest(t)
	if err := rootCmd.PersistentFlags().Set("input", "other.html"); err != nil {
		t.Fatalf("set input flag: %v", err)
	}

	cfg, err := buildRuntimeConfig(rootCmd, []string{"page.html"})
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}

	if cfg.App.InputFile != "other.html" {
		t.Fatalf("expected flag input override, got %q", cfg.App.InputFile)
	}
}

func TestBuildRuntimeConfigERBFlagSetsTemplatingTags(t *testing.T) {
	resetCLIStateForTest(t)
	if err := rootCmd.PersistentFlags().Set("erb", "true"); err != nil {
		t.Fatalf("set erb flag: %v", err)
	}

	cfg, err := buildRuntimeConfig(rootCmd, []string{"page.html"})
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}

	if !cfg.App.TemplatingTags {
		t.Fatal("expected --erb to enable templating tags")
	}
	if cfg.App.StrictXML {
		t.Fatal("strict XML should stay off")
	}
}

func TestBuildRuntimeConfigEnvOverridesConfigFile(t *testing.T) {
	resetCLIStateForTest(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("user_agent = \"from-file\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := rootCmd.PersistentFlags().Set("config", configPath); err != nil {
		t.Fatalf("set config flag: %v", err)
	}
	t.Setenv("HTML2HAML_USER_AGENT", "from-env")

	cfg, err := buildRuntimeConfig(rootCmd, []string{"page.html"})
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}

	if cfg.App.HTTPUserAgent != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.App.HTTPUserAgent)
	}
	if cfg.ConfigFile != configPath {
		t.Fatalf("expected config file %q, got %q", configPath, cfg.ConfigFile)
	}
}

func TestBuildRuntimeConfigReadsConfigFile(t *testing.T) {
	resetCLIStateForTest(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("templating_tags = true\nuser_agent = \"from-file\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := rootCmd.PersistentFlags().Set("config", configPath); err != nil {
		t.Fatalf("set config flag: %v", err)
	}

	cfg, err := buildRuntimeConfig(rootCmd, []string{"page.html"})
	if err != nil {
		t.Fatalf("buildRuntimeConfig returned error: %v", err)
	}

	if !cfg.App.TemplatingTags {
		t.Fatal("expected templating_tags from config file")
	}
	if cfg.App.HTTPUserAgent != "from-file" {
		t.Fatalf("expected user agent from config file, got %q", cfg.App.HTTPUserAgent)
	}
}

func TestValidateRuntimeConfigRejectsSelectorWithXML(t *testing.T) {
	cfg := &runtimeConfig{App: haml.NewDefaultConfig()}
	cfg.App.Selector = "p"
	cfg.App.StrictXML = true

	if err := validateRuntimeConfig(cfg); err == nil {
		t.Fatal("expected validation error for --select with --xml")
	}
}

func TestConvertRendersInput(t *testing.T) {
	got, err := convert(haml.NewDefaultConfig(), "<p>hi</p>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "%p hi\n" {
		t.Fatalf("got %q, want %q", got, "%p hi\n")
	}
}

func TestConvertAppliesSelector(t *testing.T) {
	cfg := haml.NewDefaultConfig()
	cfg.Selector = ".keep"

	got, err := convert(cfg, `<div><p class="keep">a</p><p>b</p></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "%p.keep a\n" {
		t.Fatalf("got %q, want %q", got, "%p.keep a\n")
	}
}
