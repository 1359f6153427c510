package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/snipdesk/internal/config"
	"github.com/five82/snipdesk/internal/logtail"
)

var (
	logLines   int
	logNoColor bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the end of the snipdesk log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		lines, err := logtail.Read(cfg.LogFile, logLines)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, l := range lines {
			if logNoColor {
				fmt.Fprintln(out, logtail.FormatLine(l))
			} else {
				fmt.Fprintln(out, logtail.ColorizeLine(l))
			}
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 200, "number of lines to show (0 for all)")
	logsCmd.Flags().BoolVar(&logNoColor, "no-color", false, "disable colors")
	rootCmd.AddCommand(logsCmd)
}
