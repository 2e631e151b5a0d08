package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	poster "github.com/jamesprial/go-reddit-poster"
	"github.com/jamesprial/go-reddit-poster/internal/input"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
	"github.com/jamesprial/go-reddit-poster/pkg/validation"
)

func newRunCmd(verbose *bool) *cobra.Command {
	var (
		file     string
		live     bool
		delay    int
		password string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit a batch of posts from a JSON or CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(file, live, delay, password, outDir, *verbose)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "posts file (.json or .csv)")
	cmd.Flags().BoolVar(&live, "live", false, "actually submit posts (default is dry run)")
	cmd.Flags().IntVar(&delay, "delay", 0, "override the default inter-post delay, in seconds")
	cmd.Flags().StringVar(&password, "password", "", "Reddit password (prompted if omitted in live mode)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the results file")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runBatch(file string, live bool, delay int, password, outDir string, verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := poster.ConfigFromEnv()
	if err != nil {
		return err
	}
	cfg.Logger = logger
	if delay > 0 {
		cfg.DefaultDelaySeconds = delay
	}

	posts, err := input.ReadFile(file)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return fmt.Errorf("no posts found in %s", file)
	}

	fmt.Printf("%s %d post(s) loaded from %s\n", bold("Loaded:"), len(posts), file)
	printPreflight(cfg, posts)

	mode := types.DryRun
	var api poster.API
	if live {
		mode = types.Live
		if password == "" {
			password, err = promptPassword(cfg.Username)
			if err != nil {
				return err
			}
		}
		cfg.Password = password

		api, err = poster.NewRedditAPI(cfg)
		if err != nil {
			return err
		}

		if !confirmLive(len(posts)) {
			fmt.Println(yellow("Aborted."))
			return nil
		}
	} else {
		fmt.Println(cyan("Dry run: nothing will be submitted. Pass --live to post for real."))
	}

	ctrl := poster.NewController(cfg, api, mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if live {
		account, err := ctrl.CheckAuth(ctx)
		if err != nil {
			return fmt.Errorf("authentication check failed: %w", err)
		}
		fmt.Printf("%s u/%s (%d link karma)\n", green("Authenticated:"), account.Name, account.LinkKarma)
	}

	results, runErr := ctrl.Run(ctx, posts, &poster.Progress{
		PostStarted: func(index, total int, post *types.PostRecord) {
			fmt.Printf("\n%s [%d/%d] r/%s: %s\n", bold("Posting"), index+1, total, post.Subreddit, post.Title)
		},
		PostFinished: func(index, total int, result types.SubmissionResult) {
			if result.Success {
				if result.DryRun {
					fmt.Printf("  %s would submit (%s)\n", cyan("DRY RUN"), result.PostID)
				} else {
					fmt.Printf("  %s %s\n", green("OK"), result.PostURL)
				}
			} else {
				fmt.Printf("  %s %s\n", red("FAILED"), result.Error)
			}
		},
		Waiting: func(remaining int) {
			fmt.Printf("  waiting %ds before next post...\n", remaining)
		},
	})

	if runErr != nil && len(results) == 0 {
		return runErr
	}
	if runErr != nil {
		fmt.Printf("\n%s %v\n", yellow("Stopped early:"), runErr)
	}

	printSummary(results)

	path, err := poster.NewRecorder(outDir, logger).Persist(results)
	if err != nil {
		return err
	}
	fmt.Printf("Results saved to %s\n", path)
	return nil
}

// printPreflight validates the batch without submitting and flags records
// that will fail.
func printPreflight(cfg *poster.Config, posts []*types.PostRecord) {
	v := validation.New(cfg.ImageExtensions)
	invalid := 0
	for i, post := range posts {
		if err := v.ValidatePost(post); err != nil {
			invalid++
			fmt.Printf("  %s post %d (r/%s): %v\n", yellow("warning:"), i+1, post.Subreddit, err)
		}
	}
	if invalid > 0 {
		fmt.Printf("%s %d of %d post(s) will fail validation\n", yellow("Preflight:"), invalid, len(posts))
	}
}

func promptPassword(username string) (string, error) {
	fmt.Printf("Reddit password for u/%s: ", username)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// confirmLive requires a typed confirmation before anything is submitted
// for real.
func confirmLive(count int) bool {
	fmt.Printf("\n%s about to submit %d post(s) to Reddit.\n", red(bold("LIVE MODE:")), count)
	fmt.Print("Type 'yes' to continue: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(scanner.Text()), "yes")
}

func printSummary(results []types.SubmissionResult) {
	summary := poster.Summarize(results)
	fmt.Printf("\n%s\n", bold("Summary"))
	fmt.Printf("  total:     %d\n", summary.Total)
	fmt.Printf("  succeeded: %s\n", green(fmt.Sprint(summary.Succeeded)))
	fmt.Printf("  failed:    %s\n", red(fmt.Sprint(summary.Failed)))
	fmt.Printf("  rate:      %.1f%%\n", summary.SuccessRate)
}
