package main

import (
	"fmt"
	"os"
	"time"

	"smart-blog-be/pkg/postapi"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "postctl",
	Short: "postctl - write and publish blog posts from the terminal",
	Long: `postctl talks to the Smart Blog API. It reads BLOG_API_URL,
BLOG_API_TOKEN and AUTOSAVE_DELAY_MS from the environment or a .env file.

Examples:
  # Start a post and type it in, saved as you go
  postctl new --title "Release notes"
  postctl edit <id> < notes.txt

  # Read it back as Markdown, then publish
  postctl show <id> --format markdown
  postctl publish <id>`,
	SilenceUsage: true,
}

var (
	apiURL  string
	token   string
	verbose bool
	noColor bool
	timeout time.Duration
)

func init() {
	cfg := postapi.ConfigFromEnv()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", cfg.BaseURL, "API base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", cfg.Token, "Bearer token")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log HTTP retries and autosave activity")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colors")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	}

	rootCmd.AddCommand(
		newListCmd(),
		newNewCmd(),
		newShowCmd(),
		newPublishCmd(),
		newDeleteCmd(),
		newEditCmd(cfg.AutosaveDelay),
		newAICmd(),
	)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newClient(logger *zap.Logger) *postapi.Client {
	return postapi.NewClient(apiURL, token,
		postapi.WithLogger(logger),
		postapi.WithTimeout(timeout),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
