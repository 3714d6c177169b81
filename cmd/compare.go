package cmd

import (
	"github.com/spf13/cobra"

	"github.com/greengrid/simulator/infra/logger"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all dispatch strategies against the same seed and compare",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	svc, ctx, stop, err := newService()
	if err != nil {
		return err
	}
	defer stop()
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Compare(ctx)
}
