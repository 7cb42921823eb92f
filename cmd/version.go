package cmd

import (
	"runtime"
	"runtime/debug"
	"strings"
	"text/template"

	"github.com/mediactl/mediactl/color"
	"github.com/mediactl/mediactl/constant"
	"github.com/mediactl/mediactl/native/libvlc"
	"github.com/mediactl/mediactl/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

// revision reads the VCS revision stamped by the go tool, if any.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"yesno": func(b bool) string {
		if b {
			return style.Fg(color.Green)("yes")
		}
		return style.Fg(color.Red)("no")
	},
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Git Commit" }}  {{ bold .Revision }}
  {{ faint "Go" }}          {{ bold .GoVersion }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "libVLC" }}      {{ yesno .LibVLC }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App, Version, Revision, GoVersion, OS, Arch string
			LibVLC                                     bool
		}{
			App:       constant.Mediactl,
			Version:   constant.Version,
			Revision:  revision(),
			GoVersion: strings.TrimPrefix(runtime.Version(), "go"),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			LibVLC:    libvlc.Available(),
		}))
	},
}
