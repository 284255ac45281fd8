package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/web"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	catalogDir    string
	catalogFormat string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the course, blog and career catalog",
	Long: `Loads the catalog the site would serve and prints it. Without --dir the
content embedded in the binary is used; with --dir the given directory is read,
which is a quick way to check edited content for front matter errors.

Examples:
  alphaprime-cli catalog
  alphaprime-cli catalog --dir ./web/content --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := afero.Fs(&afero.FromIOFS{FS: web.Content()})
		if catalogDir != "" {
			fsys = afero.NewBasePathFs(afero.NewOsFs(), catalogDir)
		}

		snap, err := catalog.Load(fsys)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		switch catalogFormat {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Courses []domain.Course     `json:"courses"`
				Posts   []domain.BlogPost   `json:"posts"`
				Career  []domain.CareerItem `json:"career"`
			}{snap.Courses, snap.Posts, snap.Career})
		case "table":
			printCatalog(cmd.OutOrStdout(), snap)
			return nil
		default:
			return fmt.Errorf("unsupported output format %q, use 'table' or 'json'", catalogFormat)
		}
	},
}

func printCatalog(out io.Writer, snap catalog.Snapshot) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "COURSES")
	fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
	for _, c := range snap.Courses {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Title, truncateString(c.Description, 50))
	}

	fmt.Fprintln(w, "\nPOSTS")
	fmt.Fprintln(w, "ID\tTITLE\tSUMMARY")
	for _, p := range snap.Posts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Title, truncateString(p.Summary, 50))
	}

	fmt.Fprintln(w, "\nCAREER")
	fmt.Fprintln(w, "ID\tTITLE\tICON")
	for _, c := range snap.Career {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Title, c.Icon)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVarP(&catalogDir, "dir", "d", "", "Content directory to load instead of the embedded content")
	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", "table", "Output format (table, json)")
}
