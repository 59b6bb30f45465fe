package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyyur/venues-client/pkg/timestamp"
)

const invalidDate = "Invalid Date"

// Timestamp command group
var timestampCmd = &cobra.Command{
	Use:   "timestamp",
	Short: "Timestamp utilities",
}

func init() {
	timestampCmd.AddCommand(timestampParseCmd)
	timestampParseCmd.Flags().Bool("strict", false, "Reject malformed input instead of printing Invalid Date")
}

// Timestamp parse command
var timestampParseCmd = &cobra.Command{
	Use:   "parse <value>",
	Short: "Parse a show timestamp",
	Long: `Reads digit runs separated by any other characters as
year, month, day, hour, minute, second and millisecond in UTC.

Example:
  fyyur timestamp parse 2021-03-15T08:30:00.000
  fyyur timestamp parse --strict "2021/03/15 08:30:00 000"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		input := args[0]
		out := cmd.OutOrStdout()

		var formatted string
		if strict {
			t, err := timestamp.ParseISOStringStrict(input)
			if err != nil {
				return err
			}
			formatted = timestamp.Format(t)
		} else {
			formatted = invalidDate
			if t := timestamp.ParseISOString(input); timestamp.IsValid(t) {
				formatted = timestamp.Format(t)
			}
		}

		if jsonOutput {
			return outputJSON(out, map[string]any{
				"input": input,
				"valid": formatted != invalidDate,
				"utc":   formatted,
			})
		}

		fmt.Fprintln(out, formatted)
		return nil
	},
}
