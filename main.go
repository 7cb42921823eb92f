package main

import (
	"time"

	"github.com/mediactl/mediactl/cmd"
	"github.com/mediactl/mediactl/config"
	"github.com/mediactl/mediactl/internal/prune"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/log"
	"github.com/mediactl/mediactl/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		keep := time.Duration(viper.GetInt(key.SnapshotKeepDays)) * 24 * time.Hour
		if n, err := prune.Older(where.Snapshots(), keep); err != nil {
			log.Warnf("pruning snapshots: %v", err)
		} else if n > 0 {
			log.Infof("pruned %d old snapshots", n)
		}
	}()

	cmd.Execute()
}
