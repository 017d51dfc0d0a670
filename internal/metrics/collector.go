package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/schema"

	"groupme/internal/core"
)

const collectInterval = 15 * time.Second

var (
	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "groupme_table_estimated_count",
		Help: "Estimated record count for a table.",
	}, []string{"table"})
)

// Collector periodically exports estimated row counts of the main tables.
type Collector struct {
	Logger *slog.Logger
	DB     core.DB
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Logger.Debug("Collecting metrics")
			if err := c.Collect(ctx); err != nil {
				c.Logger.Warn("failed to collect metrics", "error", err)
			}
		}
	}
}

// Collect refreshes the gauges once.
func (c *Collector) Collect(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, tabler := range []schema.Tabler{
		core.User{},
		core.Post{},
		core.Like{},
		core.Comment{},
		core.BlockedPost{},
		core.Seen{},
	} {
		g.Go(func() error {
			return c.collectTableEstimatedCount(ctx, tabler)
		})
	}

	return g.Wait()
}

func (c *Collector) collectTableEstimatedCount(ctx context.Context, tabler schema.Tabler) error {
	count, err := c.DB.EstimatedCount(ctx, tabler.TableName())
	if err != nil {
		return err
	}
	tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	return nil
}
