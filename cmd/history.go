package cmd

import (
	"fmt"
	"time"

	"github.com/mediactl/mediactl/history"
	"github.com/mediactl/mediactl/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Show at most this many entries, 0 for all")
	historyCmd.Flags().StringP("remove", "r", "", "Forget this locator")
	historyCmd.Flags().Bool("clear", false, "Forget everything")
	historyCmd.MarkFlagsMutuallyExclusive("remove", "clear")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played media",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if locator := lo.Must(cmd.Flags().GetString("remove")); locator != "" {
			handleErr(history.Remove(locator))
			success(cmd, "forgot %s", locator)
			return
		}
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			success(cmd, "history cleared")
			return
		}

		entries, err := history.Recent()
		handleErr(err)
		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		tw := newTable("Title", "Locator", "Plays", "Reached", "Last played")
		tw.SetColumnConfigs(alignRight(3, 4))
		for _, e := range entries {
			tw.AppendRow([]any{
				e.Title,
				e.Locator,
				e.Plays,
				fmt.Sprintf("%.0f%%", e.Position*100),
				e.LastPlayed.Format(time.DateTime),
			})
		}
		cmd.Println(tw.Render())
		cmd.Println(util.Quantify(len(entries), "entry", "entries"))
	},
}
