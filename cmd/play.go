package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/playlist"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolP("repeat", "r", false, "Replay media when it finishes")
	lo.Must0(viper.BindPFlag(key.PlayerRepeat, playCmd.Flags().Lookup("repeat")))

	playCmd.Flags().BoolP("sub-items", "s", false, "Play the sub-items of playlists and discs one after another")
	lo.Must0(viper.BindPFlag(key.PlayerPlaySubItems, playCmd.Flags().Lookup("sub-items")))

	playCmd.Flags().String("metrics", "", "Serve /metrics and /status on this address")
	lo.Must0(viper.BindPFlag(key.MetricsListen, playCmd.Flags().Lookup("metrics")))

	playCmd.Flags().StringArrayP("option", "o", nil, "Media option for every item, e.g. :start-time=30")
	playCmd.Flags().BoolP("wait", "w", false, "Wait for each item to start and skip the ones that do not")
	playCmd.Flags().StringP("playlist", "p", "", "Playlist file, or the name of one in the playlists directory")
}

var playCmd = &cobra.Command{
	Use:   "play [locator...]",
	Short: "Play media files, streams or a playlist",
	Example: "  mediactl play movie.mkv\n" +
		"  mediactl play -o :start-time=30 --wait https://example.com/live.m3u8\n" +
		"  mediactl play --playlist evening --metrics :9090",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := loadPlaylist(lo.Must(cmd.Flags().GetString("playlist")), args)
		handleErr(err)
		list.Options = append(list.Options, lo.Must(cmd.Flags().GetStringArray("option"))...)

		c, err := newController()
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handleErr(newSession(c, list, cmd.OutOrStdout()).run(ctx, lo.Must(cmd.Flags().GetBool("wait"))))
	},
}

func loadPlaylist(name string, locators []string) (*playlist.Playlist, error) {
	if name != "" {
		list, err := playlist.Load(playlist.Resolve(name))
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, playlist.FromLocators(locators...).Items...)
		return list, nil
	}

	if len(locators) == 0 {
		return nil, errors.New("nothing to play: pass a locator or --playlist")
	}
	return playlist.FromLocators(locators...), nil
}
