// Package cli implements the rentspot command line client. Every command
// runs its request through the client store so the table and selectors
// drive what gets printed.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/infra/httpclient"
	"github.com/memodb-io/rentspot/internal/infra/logger"
	"github.com/memodb-io/rentspot/internal/store/app"
)

// Options carries global flags and the seams tests replace.
type Options struct {
	Format  string
	BaseURL string
	Verbose bool

	Out io.Writer
	Err io.Writer

	// Confirm asks before destructive commands. Defaults to RunConfirm.
	Confirm func(prompt string, defaultValue bool) (bool, error)
	// NewClient builds the API client and store. Defaults to one built from config.
	NewClient func(o *Options) (*app.Client, error)
}

func (o *Options) client() (*app.Client, error) {
	if o.NewClient != nil {
		return o.NewClient(o)
	}
	return defaultClient(o)
}

func (o *Options) confirm(prompt string) (bool, error) {
	if o.Confirm != nil {
		return o.Confirm(prompt, false)
	}
	return RunConfirm(prompt, false)
}

func defaultClient(o *Options) (*app.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.BaseURL != "" {
		cfg.Client.BaseURL = o.BaseURL
	}

	log := zap.NewNop()
	if o.Verbose {
		if log, err = logger.New("debug"); err != nil {
			return nil, err
		}
	}

	api, err := httpclient.NewAPIClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return app.NewClient(api, log), nil
}

func NewRootCmd(o *Options) *cobra.Command {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}

	root := &cobra.Command{
		Use:   "rentspot",
		Short: "rentspot CLI - browse and manage rental spots",
		Long: `rentspot talks to a rentspot API server.

It lets you:
  - List, create and edit spots
  - Read and write reviews
  - Attach images to spots and reviews

Point it at a server with --base-url or RENTSPOT_CLIENT_BASEURL.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validFormat(o.Format)
		},
	}

	root.PersistentFlags().StringVarP(&o.Format, "format", "o", FormatText, "output format: text, json or yaml")
	root.PersistentFlags().StringVar(&o.BaseURL, "base-url", "", "API base url (overrides config)")
	root.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "log requests and store dispatches")

	root.AddCommand(newSpotsCmd(o))
	root.AddCommand(newReviewsCmd(o))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	o := &Options{}
	root := NewRootCmd(o)
	root.Version = version

	if err := root.Execute(); err != nil {
		printError(o.Err, err)
		return 1
	}
	return 0
}

// printError shows API validation errors field by field.
func printError(w io.Writer, err error) {
	apiErr, ok := httpclient.AsAPIError(err)
	if !ok {
		fmt.Fprintln(w, RenderError(err.Error()))
		return
	}

	msg := apiErr.Body.Message
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", apiErr.StatusCode)
	}
	fmt.Fprintln(w, RenderError(msg))

	fields := make([]string, 0, len(apiErr.Body.Errors))
	for f := range apiErr.Body.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s %s\n", SubtitleStyle.Render(f+":"), apiErr.Body.Errors[f])
	}
}

var errAborted = errors.New("aborted")

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
