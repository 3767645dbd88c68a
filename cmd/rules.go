package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/tracklog/pkg/config"
	"github.com/urfave/cli/v3"
)

// MuteCommand creates the mute command with file and tag subcommands
func MuteCommand() *cli.Command {
	return ruleCommand("mute", "Mute a file or tag", false)
}

// UnmuteCommand creates the unmute command with file and tag subcommands
func UnmuteCommand() *cli.Command {
	return ruleCommand("unmute", "Explicitly enable a file or tag", true)
}

func ruleCommand(name, usage string, enabled bool) *cli.Command {
	sub := func(kind string) *cli.Command {
		return &cli.Command{
			Name:      kind,
			Usage:     fmt.Sprintf("%s a %s (use \"*\" for the fallback rule)", name, kind),
			ArgsUsage: "NAME",
			Action: func(ctx context.Context, c *cli.Command) error {
				if c.Args().Len() != 1 {
					return fmt.Errorf("%s %s expects exactly one name", name, kind)
				}
				return setRule(c.String("config"), kind, c.Args().First(), enabled)
			},
		}
	}

	return &cli.Command{
		Name:  name,
		Usage: usage,
		Commands: []*cli.Command{
			sub(config.KindFile),
			sub(config.KindTag),
		},
	}
}

// EnableCommand creates the enable command
func EnableCommand() *cli.Command {
	return &cli.Command{
		Name:  "enable",
		Usage: "Turn all logging on",
		Action: func(ctx context.Context, c *cli.Command) error {
			return setEnabled(c.String("config"), true)
		},
	}
}

// DisableCommand creates the disable command
func DisableCommand() *cli.Command {
	return &cli.Command{
		Name:  "disable",
		Usage: "Turn all logging off",
		Action: func(ctx context.Context, c *cli.Command) error {
			return setEnabled(c.String("config"), false)
		},
	}
}

// setRule stores a file or tag rule in the rule file
func setRule(configPath, kind, name string, enabled bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.SetRule(kind, name, enabled); err != nil {
		return err
	}

	if err := cfg.SaveConfig(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	state := "muted"
	if enabled {
		state = "unmuted"
	}
	fmt.Printf("%s %s '%s'\n", capitalize(state), kind, name)
	return nil
}

// setEnabled stores the global switch in the rule file
func setEnabled(configPath string, enabled bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Enabled = enabled

	if err := cfg.SaveConfig(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if enabled {
		fmt.Println("Logging enabled")
	} else {
		fmt.Println("Logging disabled")
	}
	return nil
}
