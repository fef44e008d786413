package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/veritasproject/veritas/pkg/auth"
)

var (
	keyNameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    fmt.Sprintf("Key name [%s]", strings.Join(keyNames, ", ")),
		Required: true,
	}

	keyValueFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "API key value",
		Required: true,
	}

	keyNames = []string{auth.KeyExplorer, auth.KeyInsight, auth.KeyScan}

	authCmd = &cli.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Store a collector API key on the OS keychain",
		UsageText: `veritas auth --name explorer_api_key --key XYZ   # explorer access
   veritas auth --name insight_api_key --key XYZ    # AI insight access`,
		Action: cmdSaveKey,
		Flags: []cli.Flag{
			keyNameFlag,
			keyValueFlag,
		},
	}
)

func cmdSaveKey(c *cli.Context) error {
	name := c.String(keyNameFlag.Name)

	valid := false
	for _, n := range keyNames {
		if n == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown key name %q, expected one of: %s", name, strings.Join(keyNames, ", "))
	}

	cfg := getConfig(c)
	if err := cfg.Keys.Save(name, c.String(keyValueFlag.Name)); err != nil {
		return fmt.Errorf("saving key %s: %w", name, err)
	}

	fmt.Printf("Key %s saved to OS keychain\n", name)
	return nil
}
