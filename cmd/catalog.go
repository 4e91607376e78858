// =============================================================================
// Transfer Payload Converter - Catalog Command
// =============================================================================
//
// This file defines the 'catalog' command group.
//
// COMMAND USAGE:
//   converter catalog list               - Print positions, codes and descriptions
//   converter catalog export --xlsx FILE - Write the catalog to a spreadsheet
//
// The printed position is the value passed to 'build --error'.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
)

// exportPath is the XLSX file written by 'catalog export'.
var exportPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the error catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List error catalog entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		return listCatalog(c, cmd.OutOrStdout())
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the error catalog to an XLSX file",
	Long: `Export writes the active catalog to a spreadsheet with a header row and one
entry per row (Code, Description). The file can be edited and used again with
catalog_file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if err := c.WriteXLSX(exportPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", c.Len(), exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogExportCmd)

	catalogExportCmd.Flags().StringVar(&exportPath, "xlsx", "error_catalog.xlsx", "Output spreadsheet path")
}

// listCatalog prints the catalog as an aligned table.
func listCatalog(c *catalog.Catalog, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCODE\tDESCRIPTION")
	for i, e := range c.Entries() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, e.Code, e.Description)
	}
	return tw.Flush()
}
