package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plus3/blockfall/tetris"
	"github.com/spf13/cobra"
)

// ValidationResult is the JSON form of a config check.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Code    string         `json:"code,omitempty"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message,omitempty"`
	Config  *tetris.Config `json:"config,omitempty"`
}

// NewValidateConfigCommand creates the validate-config command.
func NewValidateConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate-config <file>",
		Short:         "Check a YAML game config",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidateConfig(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := tetris.LoadConfig(path)
	if err == nil {
		if opts.Format == "json" {
			return writeJSON(cmd, ValidationResult{Valid: true, Config: &cfg})
		}
		fmt.Fprintf(out, "✓ %s valid (%dx%d, %d ms base interval)\n", path, cfg.Width, cfg.Height, cfg.FallIntervalMs)
		return nil
	}

	var cfgErr *tetris.ConfigError
	if !errors.As(err, &cfgErr) {
		return &ExitError{Code: ExitCommandError, Message: "failed to load config", Err: err}
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd, ValidationResult{
			Code:    string(cfgErr.Code),
			Field:   cfgErr.Field,
			Message: cfgErr.Message,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, "✗ Validation failed")
		fmt.Fprintf(out, "  %s: %s: %s\n", cfgErr.Code, cfgErr.Field, cfgErr.Message)
	}
	return &ExitError{Code: ExitFailure, Message: "invalid config", Err: err}
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
