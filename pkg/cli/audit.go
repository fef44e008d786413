package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/veritasproject/veritas/pkg/audit"
	"github.com/veritasproject/veritas/pkg/auth"
	"github.com/veritasproject/veritas/pkg/data"
	"github.com/veritasproject/veritas/pkg/insight"
	"github.com/veritasproject/veritas/pkg/net"
	"github.com/veritasproject/veritas/pkg/offchain"
	"github.com/veritasproject/veritas/pkg/onchain"
)

const reportFileMode = 0600

// demoProjects are well-known contracts used by the demo literal. Addresses
// are kept lowercase (no checksum casing to maintain).
var demoProjects = []struct {
	Name    string
	Address string
}{
	{Name: "Uniswap V2 Router", Address: "0x7a250d5630b4cf539739df2c5dacb4c659f2488d"},
	{Name: "USDC Token", Address: "0xa0b86a33e6417c5a2b2b7c8b4e7a6b22b69c0a17"},
	{Name: "Chainlink Price Feed", Address: "0x5f4ec3df9cbd43714fe2740f5e3616155c5b8419"},
}

var (
	chainFlag = &cli.StringFlag{
		Name:  "chain",
		Usage: "Chain to audit on (must be present in config)",
	}

	timeoutFlag = &cli.IntFlag{
		Name:  "timeout",
		Usage: "Evidence collection timeout in seconds",
	}

	typeHintFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Project type hint [contract, token, dao] (recorded on the report)",
	}

	outFileFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Write the JSON report to a file (optional path, auto-named when empty)",
	}

	noInsightFlag = &cli.BoolFlag{
		Name:  "no-insight",
		Usage: "Skip the AI insight call",
	}

	auditCmd = &cli.Command{
		Name:      "audit",
		Aliases:   []string{"a"},
		Usage:     "Audit a Web3 project and produce its trust score",
		ArgsUsage: "<address | project name | demo>",
		UsageText: `veritas audit 0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D   # audit a contract
   veritas audit "Uniswap" --no-insight                       # name-only audit
   veritas audit demo                                         # audit the demo set`,
		HideHelpCommand: true,
		Action:          cmdAudit,
		Flags: []cli.Flag{
			chainFlag,
			timeoutFlag,
			typeHintFlag,
			outFileFlag,
			noInsightFlag,
		},
	}
)

func cmdAudit(c *cli.Context) error {
	target := c.Args().First()
	if target == "" {
		return cli.ShowSubcommandHelp(c)
	}

	cfg := getConfig(c)

	orch, err := buildOrchestrator(c, cfg)
	if err != nil {
		return err
	}

	if target == "demo" {
		return runDemo(c, cfg, orch)
	}

	score, err := orch.AuditProject(c.Context, target)
	if err != nil {
		return err
	}
	score.ProjectType = c.String(typeHintFlag.Name)

	if err := data.SaveAudit(cfg.DB, score); err != nil {
		slog.Warn("failed to save audit history", "project", score.Project, "error", err)
	}

	if c.IsSet(outFileFlag.Name) {
		if err := exportReport(score, c.String(outFileFlag.Name)); err != nil {
			return err
		}
	}

	return output(score)
}

// runDemo audits the registered demo contracts. Individual failures are
// reported and skipped; the run fails only when nothing could be audited.
func runDemo(c *cli.Context, cfg *appConfig, orch *audit.Orchestrator) error {
	completed := 0
	for _, p := range demoProjects {
		slog.Info("auditing demo project", "name", p.Name, "address", p.Address)

		id, err := audit.ParseIdentifier(p.Address)
		if err != nil {
			slog.Error("invalid demo address", "name", p.Name, "error", err)
			continue
		}
		id.Name = p.Name

		score, err := orch.Audit(c.Context, id)
		if err != nil {
			slog.Error("demo audit failed", "name", p.Name, "error", err)
			continue
		}

		if err := data.SaveAudit(cfg.DB, score); err != nil {
			slog.Warn("failed to save audit history", "project", p.Name, "error", err)
		}
		if err := output(score); err != nil {
			return err
		}
		completed++
	}

	if completed == 0 {
		return errors.New("no demo audit completed")
	}
	return nil
}

func buildOrchestrator(c *cli.Context, cfg *appConfig) (*audit.Orchestrator, error) {
	chainName := c.String(chainFlag.Name)
	if chainName == "" {
		chainName = cfg.Conf.DefaultChain
	}
	chain, ok := cfg.Conf.ChainByName(chainName)
	if !ok {
		return nil, fmt.Errorf("chain %q not found in config", chainName)
	}

	hc, err := net.GetHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	explorerKey, err := cfg.Keys.Get(auth.KeyExplorer)
	if err != nil {
		slog.Debug("no explorer API key configured, using anonymous access")
		explorerKey = ""
	}

	// The hosted scan service wants a bearer token; anonymous access works
	// against self-hosted instances.
	scanClient := hc
	if scanKey, keyErr := cfg.Keys.Get(auth.KeyScan); keyErr == nil {
		scanClient = net.GetBearerClient(c.Context, scanKey)
	}

	opts := []audit.Option{
		audit.WithTimeout(time.Duration(cfg.Conf.TimeoutSeconds) * time.Second),
	}
	if c.IsSet(timeoutFlag.Name) {
		opts = append(opts, audit.WithTimeout(time.Duration(c.Int(timeoutFlag.Name))*time.Second))
	}

	if !c.Bool(noInsightFlag.Name) {
		if insightKey, keyErr := cfg.Keys.Get(auth.KeyInsight); keyErr == nil {
			opts = append(opts, audit.WithInsight(insight.New(insightKey, cfg.Conf.InsightModel)))
		} else {
			slog.Debug("no insight API key configured, skipping AI insight")
		}
	}

	return audit.NewOrchestrator(
		onchain.New(chain, explorerKey, hc),
		offchain.New(cfg.Conf.ScanServiceURL, scanClient),
		opts...,
	), nil
}

// output renders the score in the selected format.
func output(score *audit.TrustScore) error {
	if outputFormat == formatText {
		fmt.Println(renderScore(score))
		return nil
	}
	return encode(score)
}

// exportReport writes the JSON report to path, generating a timestamped
// file name when path is empty.
func exportReport(score *audit.TrustScore, path string) error {
	if path == "" {
		path = fmt.Sprintf("veritas_report_%s_%s.json",
			safeFileName(score.Project), score.Timestamp.Format("20060102_150405"))
	}

	b, err := jsonIndent(score)
	if err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}
	if err := os.WriteFile(path, b, reportFileMode); err != nil {
		return fmt.Errorf("error writing report to %s: %w", path, err)
	}

	slog.Info("report saved", "path", path)
	return nil
}
