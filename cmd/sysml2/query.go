package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysml2/internal/query"
	"sysml2/internal/snapshot"
)

var queryCmd = &cobra.Command{
	Use:   "query <pattern> <snapshot>",
	Short: "List elements matching a qualified-id pattern in a model snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	pattern := query.Parse(args[0])

	m, in, _, err := snapshot.Load(args[1])
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	for _, elem := range m.Elements {
		if !pattern.Matches(in, elem.ID) {
			continue
		}
		name, _ := in.Lookup(elem.ID)
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
