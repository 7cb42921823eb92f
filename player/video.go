package player

import (
	"context"
	"time"

	"github.com/mediactl/mediactl/listener"
	"github.com/mediactl/mediactl/metrics"
)

// videoOutputDetector starts a poll for a video output each time playback starts.
type videoOutputDetector struct {
	listener.Adapter
	c *Controller
}

func (d *videoOutputDetector) Playing() {
	c := d.c
	if c.videoListeners.Len() == 0 {
		return
	}

	period := time.Duration(c.videoPoll.Load())
	timeout := time.Duration(c.videoTimeout.Load())
	ctx := c.ctx
	c.videoQueue.Submit(func() {
		c.detectVideoOutput(ctx, period, timeout)
	})
}

// detectVideoOutput runs on the video queue. The outcome is handed back to the dispatch
// worker, which is the only goroutine that calls listeners.
func (c *Controller) detectVideoOutput(ctx context.Context, period, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			metrics.VideoOutputDetections.WithLabelValues("cancelled").Inc()
			return
		case <-ticker.C:
		}

		if c.hasVideoOutput() {
			c.reportVideoOutput(ctx, true)
			return
		}
		if !time.Now().Before(deadline) {
			c.reportVideoOutput(ctx, false)
			return
		}
	}
}

func (c *Controller) hasVideoOutput() bool {
	if err := c.lock(); err != nil {
		return false
	}
	defer c.mu.Unlock()
	return c.engine.VideoOutputCount(c.player) > 0
}

func (c *Controller) reportVideoOutput(ctx context.Context, ok bool) {
	if ctx.Err() != nil {
		metrics.VideoOutputDetections.WithLabelValues("cancelled").Inc()
		return
	}

	result := "available"
	if !ok {
		result = "timeout"
	}
	metrics.VideoOutputDetections.WithLabelValues(result).Inc()
	c.logger.WithField("result", result).Debug("video output detection finished")

	c.dispatcher.Submit(func() {
		c.videoListeners.Each("video-output", func(l listener.VideoOutputListener) {
			l.VideoOutputAvailable(ok)
		})
	})
}
