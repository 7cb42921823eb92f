package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/mediactl/mediactl/color"
	"github.com/mediactl/mediactl/native"
	"github.com/mediactl/mediactl/player"
	"github.com/mediactl/mediactl/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metaCmd)
	metaCmd.Flags().StringP("field", "f", "", "Print only the field best matching this name")
	metaCmd.Flags().BoolP("json", "j", false, "Print as JSON")
	lo.Must0(metaCmd.RegisterFlagCompletionFunc("field", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(native.MetaFields(), func(f native.Meta, _ int) string { return f.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
}

var metaCmd = &cobra.Command{
	Use:   "meta <locator>",
	Short: "Parse a media and print its metadata",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		meta, err := parsedMeta(args[0])
		handleErr(err)

		if query := lo.Must(cmd.Flags().GetString("field")); query != "" {
			fields := player.MatchFields(query)
			if len(fields) == 0 {
				handleErr(fmt.Errorf("no metadata field matches %s", style.Fg(color.Red)(query)))
			}
			cmd.Println(meta.Get(fields[0]))
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(meta))
			return
		}

		tw := newTable("Field", "Value")
		tw.AppendRow([]any{"Locator", meta.Locator})
		for _, field := range meta.Present() {
			tw.AppendRow([]any{field.String(), meta.Get(field)})
		}
		cmd.Println(tw.Render())
	},
}

func parsedMeta(locator string) (player.MediaMeta, error) {
	c, err := newController()
	if err != nil {
		return player.MediaMeta{}, err
	}
	defer c.Release()

	if _, err := c.PrepareMedia(locator); err != nil {
		return player.MediaMeta{}, err
	}
	if err := c.ParseMedia(); err != nil {
		return player.MediaMeta{}, err
	}
	return c.MediaMeta()
}
