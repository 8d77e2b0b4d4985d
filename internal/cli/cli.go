package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/priceflex/haml"
	"github.com/spf13/cobra"
)

var (
	// Command-line flags. Viper merges these with the config file and
	// environment; see buildRuntimeConfig.
	flagConfigFile string
	flagInputFile  string
	flagOutputFile string
	flagURL        string
	flagSelector   string
	flagMarkdown   bool
	flagERB        bool
	flagXML        bool
	flagTimeout    int
	flagUserAgent  string
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "html2haml [FILE]",
	Short: "Convert HTML documents to Haml templates",
	Long: `html2haml converts HTML or XHTML markup into an equivalent Haml template.
Input comes from a file, standard input, or a URL; output goes to standard
output or a file. With --erb, embedded <%= %> and <% %> tags are converted
into Haml's = and - line forms instead of being kept as literal text.`,
	Example: `  # Convert a file
  html2haml page.html

  # Convert standard input
  cat page.html | html2haml

  # Convert an ERB template, writing the result to a file
  html2haml --erb --output page.haml page.html.erb

  # Convert only the article body of a fetched page
  html2haml --url https://example.com/post --select article

  # Convert a Markdown document by way of HTML
  html2haml --markdown README.md`,
	RunE: runConvert,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		haml.InitLogger(flagDebug)
	},
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaults := haml.NewDefaultConfig()

	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file path (TOML)")
	rootCmd.PersistentFlags().StringVar(&flagInputFile, "input", "", `input HTML file path ("-" for stdin)`)
	rootCmd.PersistentFlags().StringVar(&flagOutputFile, "output", "", "output Haml file path (default stdout)")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "fetch the input document from a URL")
	rootCmd.PersistentFlags().StringVar(&flagSelector, "select", "", "convert only subtrees matching a CSS selector")
	rootCmd.PersistentFlags().BoolVar(&flagMarkdown, "markdown", false, "treat the input as Markdown and convert via HTML")
	rootCmd.PersistentFlags().BoolVar(&flagERB, "erb", false, "convert embedded ERB tags to Haml script lines")
	rootCmd.PersistentFlags().BoolVar(&flagXML, "xml", false, "parse the input as strict XML")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", int(defaults.HTTPTimeout.Seconds()), "fetch timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", defaults.HTTPUserAgent, "User-Agent for --url fetches")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.MarkFlagsMutuallyExclusive("input", "url")
	rootCmd.MarkFlagsMutuallyExclusive("url", "markdown")
}

// Execute runs the command-line program.
func Execute() error {
	return rootCmd.Execute()
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := buildRuntimeConfig(cmd, args)
	if err != nil {
		return err
	}

	input, err := readInput(cfg.App)
	if err != nil {
		return err
	}

	output, err := convert(cfg.App, input)
	if err != nil {
		return err
	}

	return writeOutput(cfg.App.OutputFile, output)
}

func readInput(cfg *haml.Config) (string, error) {
	switch {
	case cfg.URL != "":
		return haml.FetchDocument(cfg.URL, cfg.HTTPTimeout, cfg.HTTPUserAgent)
	case cfg.InputFile == "" || cfg.InputFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", haml.NewIOError("failed to read stdin", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(cfg.InputFile)
		if err != nil {
			return "", haml.NewIOError("failed to read "+cfg.InputFile, err)
		}
		return string(data), nil
	}
}

func convert(cfg *haml.Config, input string) (string, error) {
	opts := cfg.ConversionOptions()

	if cfg.Markdown {
		return haml.RenderMarkdown([]byte(input), opts)
	}

	converter := haml.NewConverter(opts)
	if cfg.Selector != "" {
		if err := converter.Select(cfg.Selector); err != nil {
			return "", err
		}
	}
	if err := converter.LoadFromString(input); err != nil {
		return "", err
	}
	return converter.Convert()
}

func writeOutput(path, output string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return haml.NewIOError("failed to write "+path, err)
	}
	return nil
}
