package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chrisconley/tally/internal"
	specs "github.com/chrisconley/tally/specs"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

type resultKind int

const (
	cyclicalResult resultKind = iota + 1
	totalResult
)

func (k resultKind) String() string {
	if k == cyclicalResult {
		return "cyclical"
	}
	return "total"
}

func newMergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <first> <second>",
		Short: "Merge two results of the same kind",
		Long: `Merge two previously printed results. Cyclical results are unioned by bucket
key; total results are concatenated.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, firstKind, err := readResult(args[0])
			if err != nil {
				return err
			}
			second, secondKind, err := readResult(args[1])
			if err != nil {
				return err
			}
			if firstKind != secondKind {
				return fmt.Errorf("cannot merge a %s result with a %s result", firstKind, secondKind)
			}

			if firstKind == cyclicalResult {
				var left, right specs.CycleStatisticsResultSpec
				if err := json.Unmarshal(first, &left); err != nil {
					return fmt.Errorf("failed to decode %s: %w", args[0], err)
				}
				if err := json.Unmarshal(second, &right); err != nil {
					return fmt.Errorf("failed to decode %s: %w", args[1], err)
				}
				merged, err := internal.MergeCycleResults(left, right)
				if err != nil {
					return err
				}
				return a.writeJSON(cmd, merged)
			}

			var left, right specs.TotalStatisticsResultSpec
			if err := json.Unmarshal(first, &left); err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[0], err)
			}
			if err := json.Unmarshal(second, &right); err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[1], err)
			}
			merged, err := internal.MergeTotalResults(left, right)
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, merged)
		},
	}
}

// readResult reads a result file and tells bucket arrays from total objects.
func readResult(path string) ([]byte, resultKind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read result: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, 0, fmt.Errorf("%s is not valid JSON", path)
	}

	parsed := gjson.ParseBytes(data)
	switch {
	case parsed.IsArray():
		return data, cyclicalResult, nil
	case parsed.IsObject() && parsed.Get("items").Exists():
		return data, totalResult, nil
	default:
		return nil, 0, fmt.Errorf("%s is neither a cyclical nor a total result", path)
	}
}
