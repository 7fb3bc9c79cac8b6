package commands

import (
	"strconv"

	"github.com/leapstack-labs/sqlmark/internal/cli/output"
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
	"github.com/spf13/cobra"
)

// Reference listing statuses.
const (
	statusMatched    = "matched"
	statusUnmatched  = "unmatched"
	statusNoLocation = "no location"
)

// RefsOptions holds options for the refs command.
type RefsOptions struct {
	RefsFile     string
	OutputFormat string
}

// NewRefsCommand creates the refs command.
func NewRefsCommand() *cobra.Command {
	opts := &RefsOptions{}

	cmd := &cobra.Command{
		Use:   "refs <sql-file>",
		Short: "List references and their match status",
		Long: `Display every reference with its type, icon, declared line, snippet, and
whether the snippet was found on that line of the SQL file.`,
		Example: `  # Tabular listing
  sqlmark refs query.sql --refs refs.json

  # As JSON
  sqlmark refs query.sql --refs refs.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.RefsFile, "refs", "r", "", "References file (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "", "Output format (text|json)")
	_ = cmd.MarkFlagRequired("refs")

	return cmd
}

func runRefs(cmd *cobra.Command, sqlPath string, opts *RefsOptions) error {
	cfg := getConfig()

	sql, err := readSQL(cmd, sqlPath)
	if err != nil {
		return err
	}

	refs, err := loadRefs(opts.RefsFile)
	if err != nil {
		return err
	}

	result := annotate.AnnotateWithOptions(sql, refs, annotate.Options{Diagnostics: true})
	icons := cfg.IconSet()

	rows := make([]output.RefRow, len(refs))
	for i, ref := range refs {
		rows[i] = output.RefRow{
			Num:     ref.Num,
			Type:    ref.Type,
			Icon:    icons.Icon(ref.Type),
			Line:    "-",
			Snippet: ref.Snippet,
			Status:  refStatus(result, ref),
		}
		if ref.Locatable() {
			rows[i].Line = strconv.Itoa(ref.Location.Line)
		}
	}

	renderer := newRenderer(cmd, opts.OutputFormat)
	return renderer.RefsTable(rows)
}

// refStatus classifies one reference against the annotation result.
func refStatus(result *annotate.Result, ref annotate.Reference) string {
	if !ref.Locatable() {
		return statusNoLocation
	}
	for _, u := range result.Unmatched {
		if u.Equal(ref) {
			return statusUnmatched
		}
	}
	return statusMatched
}
