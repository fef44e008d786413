package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/veritasproject/veritas/pkg/data"
)

const historyLimitDefault = 20

var (
	historyLikeFlag = &cli.StringFlag{
		Name:  "like",
		Usage: "Fuzzy project name/address match",
	}

	historyLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of results returned",
		Value: historyLimitDefault,
	}

	historyCmd = &cli.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "List previously completed audits",
		UsageText: `veritas history                     # most recent audits
   veritas history --like uniswap      # audits matching a project
   veritas history --limit 5           # cap result count`,
		HideHelpCommand: true,
		Action:          cmdHistory,
		Flags: []cli.Flag{
			historyLikeFlag,
			historyLimitFlag,
		},
	}
)

func cmdHistory(c *cli.Context) error {
	cfg := getConfig(c)

	var like *string
	if v := c.String(historyLikeFlag.Name); v != "" {
		like = &v
	}

	items, err := data.QueryAudits(cfg.DB, like, c.Int(historyLimitFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to query audit history: %w", err)
	}

	return encode(items)
}
