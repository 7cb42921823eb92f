package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mediactl/mediactl/key"
	"github.com/spf13/viper"
)

func newTable(headers ...any) table.Writer {
	tw := table.NewWriter()
	if viper.GetBool(key.CliColored) {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleRounded)
	}
	tw.AppendHeader(headers)
	tw.Style().Format.Header = text.FormatDefault
	return tw
}

func alignRight(columns ...int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, n := range columns {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	return configs
}
