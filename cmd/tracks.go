package cmd

import (
	"fmt"
	"strconv"

	"github.com/mediactl/mediactl/native"
	"github.com/mediactl/mediactl/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tracksCmd)
	tracksCmd.Flags().BoolP("sub-items", "s", false, "Also list the sub-items of the media")
}

var tracksCmd = &cobra.Command{
	Use:   "tracks <locator>",
	Short: "Parse a media and list its elementary streams",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newController()
		handleErr(err)
		defer c.Release()

		_, err = c.PrepareMedia(args[0])
		handleErr(err)
		handleErr(c.ParseMedia())

		tracks, err := c.TrackInfo()
		handleErr(err)

		tw := newTable("#", "Type", "Codec", "Language", "Details", "Bitrate")
		tw.SetColumnConfigs(alignRight(1, 6))
		for _, t := range tracks {
			tw.AppendRow([]any{t.ID, t.Type.String(), t.CodecName(), t.Language, trackDetails(t), bitrate(t.Bitrate)})
		}
		cmd.Println(tw.Render())
		cmd.Println(util.Quantify(len(tracks), "track", "tracks"))

		if showSub, _ := cmd.Flags().GetBool("sub-items"); showSub {
			items, err := c.SubItems()
			handleErr(err)
			for i, item := range items {
				cmd.Printf("%3d  %s\n", i+1, item)
			}
		}
	},
}

func trackDetails(t native.TrackInfo) string {
	switch t.Type {
	case native.TrackVideo:
		details := fmt.Sprintf("%dx%d", t.Width, t.Height)
		if t.FrameRateDen > 0 {
			details += fmt.Sprintf(" @ %.3g fps", float64(t.FrameRateNum)/float64(t.FrameRateDen))
		}
		return details
	case native.TrackAudio:
		return fmt.Sprintf("%s, %d Hz", util.Quantify(int(t.Channels), "channel", "channels"), t.Rate)
	case native.TrackText:
		return t.Encoding
	default:
		return t.Description
	}
}

func bitrate(bps uint32) string {
	if bps == 0 {
		return "-"
	}
	return strconv.FormatFloat(float64(bps)/1000, 'f', 0, 64) + " kb/s"
}
