package smokecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type options struct {
	baseURL string
	timeout time.Duration
	ci      bool
}

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "campushub-check",
		Short: "Smoke-check a running campus hub server",
	}
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newRunCommand(opts))
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the auth lifecycle scenarios end to end",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			results := RunAll(ctx, opts.baseURL)
			failed := 0
			if !opts.ci {
				fmt.Println(titleStyle.Render("campushub smoke check"))
			}
			for _, res := range results {
				if opts.ci {
					printCIResult(res)
				} else {
					printStyledResult(res)
				}
				if !res.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}
}

func printStyledResult(res Result) {
	marker := passStyle.Render("PASS")
	if !res.Passed {
		marker = failStyle.Render("FAIL")
	}
	fmt.Printf("%s %s\n", marker, res.Name)
	for _, d := range res.Details {
		fmt.Println(detailStyle.Render("  - " + d))
	}
	if res.Err != nil {
		fmt.Println(failStyle.Render("  ! " + res.Err.Error()))
	}
}

func printCIResult(res Result) {
	status := "pass"
	if !res.Passed {
		status = "fail"
	}
	fmt.Printf("result=%s scenario=%q", status, res.Name)
	if res.Err != nil {
		fmt.Printf(" error=%q", res.Err.Error())
	}
	fmt.Println()
}
