package cli

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/priceflex/haml"
	"github.com/priceflex/haml/internal/configsource"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type runtimeConfig struct {
	App        *haml.Config
	Debug      bool
	ConfigFile string
}

type runtimeConfigValues struct {
	haml.Config `mapstructure:",squash"`
	Debug       bool `mapstructure:"debug"`
}

func buildRuntimeConfig(cmd *cobra.Command, args []string) (*runtimeConfig, error) {
	v, err := configsource.NewViperForCommand(cmd, flagConfigFile)
	if err != nil {
		return nil, err
	}

	values := runtimeConfigValues{
		Config: *haml.NewDefaultConfig(),
	}
	if err := v.Unmarshal(&values, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	values.InputFile = strings.TrimSpace(values.InputFile)
	values.OutputFile = strings.TrimSpace(values.OutputFile)
	values.URL = strings.TrimSpace(values.URL)
	values.Selector = strings.TrimSpace(values.Selector)
	values.HTTPUserAgent = strings.TrimSpace(values.HTTPUserAgent)

	if values.InputFile == "" && len(args) > 0 {
		values.InputFile = args[0]
	}

	cfg := &runtimeConfig{
		App:        &values.Config,
		Debug:      values.Debug,
		ConfigFile: v.ConfigFileUsed(),
	}

	if err := validateRuntimeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateRuntimeConfig(cfg *runtimeConfig) error {
	if cfg.App.URL != "" && cfg.App.InputFile != "" {
		return fmt.Errorf("--url and an input file are mutually exclusive")
	}
	if cfg.App.URL != "" && cfg.App.Markdown {
		return fmt.Errorf("--markdown is not supported with --url")
	}
	if cfg.App.Selector != "" && cfg.App.StrictXML {
		return fmt.Errorf("--select is not supported with --xml")
	}
	if cfg.App.Selector != "" && cfg.App.Markdown {
		return fmt.Errorf("--select is not supported with --markdown")
	}
	if cfg.App.URL != "" && cfg.App.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	return nil
}

// durationDecodeHook accepts bare numbers as seconds so "timeout = 30" works
// in the config file alongside "timeout = \"30s\"".
func durationDecodeHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case int:
			return time.Duration(value) * time.Second, nil
		case int64:
			return time.Duration(value) * time.Second, nil
		case float64:
			return time.Duration(value) * time.Second, nil
		case string:
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return time.Duration(0), nil
			}
			if strings.ContainsAny(trimmed, "hmsuµns") {
				parsed, err := time.ParseDuration(trimmed)
				if err != nil {
					return nil, err
				}
				return parsed, nil
			}
			return time.ParseDuration(trimmed + "s")
		default:
			return data, nil
		}
	}
}
