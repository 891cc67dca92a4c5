package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"ilabattach/internal/logger"
	"ilabattach/internal/model"

	"github.com/spf13/cobra"
)

type Attacher interface {
	ResolveRequestID(ctx context.Context, name, coreID, fromDate string) (string, error)
	UploadAttachment(ctx context.Context, requestID string, att model.Attachment) (model.UploadResult, error)
}

type Dependencies struct {
	Client Attacher
	Output io.Writer
	// LogLevel понижается до debug флагом --verbose. Может быть nil.
	LogLevel *slog.LevelVar
}

type options struct {
	ref     model.RequestRef
	att     model.Attachment
	verbose bool
}

func NewRootCommand(deps Dependencies) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "ilab-attach",
		Short: "Add an attachment (file) to an iLab request",
		Long: `Add an attachment (file) to an iLab request.

The request is given either by its internal iLab id (--id) or by its name
(--name) together with your core id (--core). The API bearer token is read
from the ILAB_API_TOKEN environment variable.`,
		Example: `  ilab-attach --id 123456 -f ~/readme.txt -n "A Test Attachment" -v
  ilab-attach --name 123-JRG -c 1234 -f ~/readme.txt -n "A Test Attachment"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), deps, opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.ref.ID, "id", "i", "", "The (internal) iLab id of the request")
	flags.StringVar(&opts.ref.Name, "name", "", "The iLab name of the request")
	flags.StringVarP(&opts.ref.CoreID, "core", "c", "", "Your iLab core id, required with --name")
	flags.StringVar(&opts.ref.FromDate, "from-date", model.DefaultFromDate, "Oldest request date to search by --name (YYYY-MM-DD)")
	flags.StringVarP(&opts.att.Path, "file", "f", "", "The path to the file to attach to the request")
	flags.StringVarP(&opts.att.Note, "note", "n", "", "A note or friendly name of the attachment")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging and the full JSON response")

	root.MarkFlagsMutuallyExclusive("id", "name")
	root.MarkFlagsOneRequired("id", "name")
	_ = root.MarkFlagRequired("file")

	return root
}

func run(ctx context.Context, deps Dependencies, opts options) error {
	if err := opts.ref.Validate(); err != nil {
		return err
	}
	if opts.verbose && deps.LogLevel != nil {
		deps.LogLevel.Set(slog.LevelDebug)
	}

	output := deps.Output
	if output == nil {
		output = io.Discard
	}

	id := opts.ref.ID
	if opts.ref.ByName() {
		var err error
		id, err = deps.Client.ResolveRequestID(ctx, opts.ref.Name, opts.ref.CoreID, opts.ref.FromDate)
		if err != nil {
			return err
		}
		if opts.verbose {
			fmt.Fprintf(output, "iLab ID for %s: %s\n", opts.ref.Name, id)
		}
	}

	ctx = logger.Context(ctx, slog.Default().With("requestID", id))
	result, err := deps.Client.UploadAttachment(ctx, id, opts.att)
	if err != nil {
		return err
	}

	if opts.verbose {
		return writeJSON(output, result)
	}

	path, err := filepath.Abs(opts.att.Path)
	if err != nil {
		path = opts.att.Path
	}
	_, err = fmt.Fprintf(output, "%s uploaded to iLab request %s.\n", path, id)
	return err
}

func writeJSON(w io.Writer, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "    "); err != nil {
		buf.Reset()
		buf.Write(data)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
