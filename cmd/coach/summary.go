package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runSummary(cmd *cobra.Command, args []string) error {
	summary, err := newGateway().SessionSummary(cmd.Context(), args[0])
	if err != nil {
		logger.Warn("summary failed", zap.String("session_id", args[0]), zap.Error(err))
		return fmt.Errorf("could not load summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Indent())
	return err
}
