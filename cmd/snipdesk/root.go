package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/five82/snipdesk/internal/app"
)

var (
	cfgFile     string
	prefsFile   string
	baseURL     string
	pollSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "snipdesk",
	Short: "Edit weekly snippets from the terminal",
	Long: `snipdesk loads your weekly snippet forms from a snippet server and lets you
edit, preview and save them without a browser. Admins also get the
manage-users page with hide/unhide and delete.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// SIGINT/SIGTERM go through the unsaved-snippet guard inside the
		// TUI, so no signal context here.
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		return app.Run(ctx, app.Options{
			ConfigPath: cfgFile,
			PrefsPath:  prefsFile,
			BaseURL:    baseURL,
			PollEvery:  pollSeconds,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.config/snipdesk/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsFile, "prefs", "", "preferences file path (default ~/.config/snipdesk/prefs.toml)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "snippet server URL, overrides base_url")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "seconds between reachability checks (default 15)")
}
