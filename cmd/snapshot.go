package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mediactl/mediactl/event"
	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/player"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().IntP("width", "W", 0, "Fit the snapshot into this width")
	snapshotCmd.Flags().IntP("height", "T", 0, "Fit the snapshot into this height")
	snapshotCmd.Flags().DurationP("at", "a", 0, "Seek to this offset before taking the snapshot")
}

// videoReady is a video output listener that reports through a channel.
type videoReady chan bool

func (v videoReady) VideoOutputAvailable(ok bool) {
	select {
	case v <- ok:
	default:
	}
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <locator> [file]",
	Short: "Save a frame of a media as PNG",
	Long: "Save a frame of a media as PNG.\n" +
		"Without a file the snapshot lands in the snapshot directory, see " + key.SnapshotDirectory + ".",
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			width  = lo.Must(cmd.Flags().GetInt("width"))
			height = lo.Must(cmd.Flags().GetInt("height"))
			at     = lo.Must(cmd.Flags().GetDuration("at"))
			target string
		)
		if len(args) == 2 {
			target = args[1]
		}

		c, err := newController(player.WithEventMask(event.MaskOf(event.Playing, event.Error, event.MediaStateChanged)))
		handleErr(err)
		defer c.Release()

		ready := make(videoReady, 1)
		handleErr(c.AddVideoOutputListener(ready))

		timeout := time.Duration(viper.GetInt(key.PlayerStartTimeout)) * time.Millisecond
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		started, err := c.StartMedia(ctx, args[0], ":no-audio")
		handleErr(err)
		if !started {
			handleErr(fmt.Errorf("could not play %s", args[0]))
		}

		select {
		case ok := <-ready:
			if !ok {
				handleErr(errors.New("media has no video output"))
			}
		case <-ctx.Done():
			handleErr(ctx.Err())
		}

		if at > 0 {
			handleErr(c.SetTime(at.Milliseconds()))
		}

		path, err := c.SaveSnapshot(target)
		handleErr(err)

		if width > 0 || height > 0 {
			handleErr(fitImage(path, width, height))
		}
		success(cmd, "saved %s", path)
	},
}

// fitImage shrinks the PNG at path in place to fit width x height. A zero bound is unconstrained.
func fitImage(path string, width, height int) error {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return err
	}
	img, err := imaging.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	bounds := img.Bounds()
	if width <= 0 {
		width = bounds.Dx()
	}
	if height <= 0 {
		height = bounds.Dy()
	}

	out, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	return imaging.Encode(out, imaging.Fit(img, width, height, imaging.Lanczos), imaging.PNG)
}
