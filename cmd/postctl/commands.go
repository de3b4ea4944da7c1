package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"smart-blog-be/pkg/editor"
	"smart-blog-be/pkg/lexical"
	"smart-blog-be/pkg/postapi"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		status string
		skip   int
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			list, err := newClient(newLogger()).ListPosts(ctx, postapi.ListOptions{
				Status: postapi.Status(status),
				Skip:   skip,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			return printPosts(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: draft|published")
	cmd.Flags().IntVar(&skip, "skip", 0, "Posts to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum posts to return (server default 50)")
	return cmd
}

func printPosts(out io.Writer, list *postapi.PostList) error {
	if len(list.Posts) == 0 {
		fmt.Fprintln(out, "No posts yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tUPDATED\tTITLE")
	for _, p := range list.Posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, statusLabel(p.Status), p.UpdatedAt.Local().Format("2006-01-02 15:04"), p.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d of %d posts\n", len(list.Posts), list.Total)
	return nil
}

func statusLabel(s postapi.Status) string {
	if s == postapi.StatusPublished {
		return color.GreenString(string(s))
	}
	return color.YellowString(string(s))
}

func newNewCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store := editor.NewStore(newClient(newLogger()))
			defer store.Close()

			post, err := store.CreatePost(ctx, title)
			if err != nil {
				return err
			}
			color.Green("Created %q", post.Title)
			fmt.Fprintln(cmd.OutOrStdout(), post.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Post title (default \"Untitled\")")
	return cmd
}

func newShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			post, err := newClient(newLogger()).GetPost(ctx, args[0])
			if errors.Is(err, postapi.ErrNotFound) {
				color.Red("post not found")
				return nil
			}
			if err != nil {
				return err
			}
			return renderPost(cmd.OutOrStdout(), post, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|html|markdown|json")
	return cmd
}

func renderPost(out io.Writer, post *postapi.Post, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(post)
	case "html":
		fmt.Fprintln(out, lexical.RenderHTML(post.Content))
	case "markdown", "md":
		fmt.Fprintf(out, "# %s\n\n%s\n", post.Title, lexical.ToMarkdown(post.Content))
	case "text":
		color.New(color.Bold).Fprintln(out, post.Title)
		fmt.Fprintf(out, "%s · updated %s\n\n", statusLabel(post.Status), post.UpdatedAt.Local().Format(time.RFC1123))
		fmt.Fprintln(out, lexical.ExtractPlainText(post.Content))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store := editor.NewStore(newClient(newLogger()))
			defer store.Close()

			post, err := store.Publish(ctx, args[0])
			if err != nil {
				return err
			}
			color.Green("Published %q", post.Title)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store := editor.NewStore(newClient(newLogger()))
			defer store.Close()

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			color.Green("Deleted %s", args[0])
			return nil
		},
	}
}

func newEditCmd(defaultDelay time.Duration) *cobra.Command {
	var (
		title   string
		replace bool
		delay   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Append lines from stdin to a post, autosaving as you type",
		Long: `Each line read from stdin becomes a block: "# ", "## " and "### " start
headings, "> " a quote, "- " a bullet and "1. " a numbered item. Anything
else is a paragraph. Changes are saved after a quiet period and once more
on EOF.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := newLogger()
			defer logger.Sync()

			store := editor.NewStore(newClient(logger),
				editor.WithDelay(delay),
				editor.WithLogger(logger),
				editor.WithStatusListener(printStatus),
			)
			defer store.Close()

			if _, err := store.Activate(ctx, args[0]); err != nil {
				if errors.Is(err, postapi.ErrNotFound) {
					return errors.New("post not found")
				}
				return err
			}
			if title != "" {
				if err := store.SetTitle(title); err != nil {
					return err
				}
			}

			root := lexical.NewEmptyTree()
			if !replace {
				if current, err := lexical.Deserialize(store.Document()); err == nil && current != nil {
					root = current
				}
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			for scanner.Scan() {
				if ctx.Err() != nil {
					break
				}
				if !appendLine(root, scanner.Text()) {
					continue
				}
				if err := store.SetTree(root); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			saveCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := store.SaveNow(saveCtx); err != nil {
				return err
			}
			color.Green("All changes saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Rename the post")
	cmd.Flags().BoolVar(&replace, "replace", false, "Start from an empty document instead of appending")
	cmd.Flags().DurationVar(&delay, "delay", defaultDelay, "Autosave quiet period")
	return cmd
}

func printStatus(s editor.Status) {
	switch s.State {
	case editor.Pending:
		color.Yellow("● unsaved changes")
	case editor.Saving:
		color.Cyan("● saving...")
	case editor.Saved:
		color.Green("● saved at %s", s.LastSavedAt.Local().Format("15:04:05"))
	case editor.Idle:
		if s.LastError != nil {
			color.Red("● save failed: %v", s.LastError)
		}
	}
}

func newAICmd() *cobra.Command {
	return &cobra.Command{
		Use:       "ai <id> <action>",
		Short:     "Run an AI assist action over a post's text",
		Long:      "Actions: summarize, fix_grammar, expand, title.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{postapi.ActionSummarize, postapi.ActionFixGrammar, postapi.ActionExpand, postapi.ActionTitle},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*timeout)
			defer cancel()

			client := newClient(newLogger())
			post, err := client.GetPost(ctx, args[0])
			if errors.Is(err, postapi.ErrNotFound) {
				color.Red("post not found")
				return nil
			}
			if err != nil {
				return err
			}

			text := lexical.ExtractPlainText(post.Content)
			if text == "" {
				return errors.New("post has no text")
			}

			res, err := client.Generate(ctx, postapi.GenerateRequest{Text: text, Action: args[1]})
			if err != nil {
				return err
			}
			color.Cyan("%s:", res.Action)
			fmt.Fprintln(cmd.OutOrStdout(), res.Result)
			return nil
		},
	}
}
