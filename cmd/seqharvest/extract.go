// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seqharvest/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "List the accession links found in page markup",
	Long: `Extract runs the accession link scanner over saved page markup (a file
argument, or stdin when omitted) and lists each accession with its
qualifiers, in page order, without fetching anything. Useful for checking
what a harvest run would download.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("json", false, "output accessions as JSON")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var markup []byte
	var err error
	if len(args) == 1 {
		markup, err = os.ReadFile(args[0])
	} else {
		markup, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading markup: %w", err)
	}

	accessions := extract.Accessions(string(markup))

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(accessions)
	}

	if len(accessions) == 0 {
		fmt.Println("No accession links found.")
		return nil
	}

	for _, acc := range accessions {
		line := acc.Accession
		if acc.HasRange() {
			line += fmt.Sprintf("  %s..%s", *acc.FromPosition, *acc.ToPosition)
		}
		if acc.HasStrand() {
			line += "  strand=" + *acc.Strand
		}
		fmt.Println(line)
	}
	fmt.Fprintf(os.Stderr, "%d accession link(s)\n", len(accessions))
	return nil
}
