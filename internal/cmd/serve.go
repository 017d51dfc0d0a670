package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"groupme/internal/api"
	"groupme/internal/auth"
	"groupme/internal/cmd/flags"
	"groupme/internal/core"
	"groupme/internal/metrics"
	"groupme/internal/nats"
	"groupme/internal/persistence"
	"groupme/internal/persistence/blocks"
	"groupme/internal/persistence/comments"
	"groupme/internal/persistence/likes"
	"groupme/internal/persistence/posts"
	"groupme/internal/persistence/seen"
	"groupme/internal/persistence/themes"
	"groupme/internal/persistence/users"
	"groupme/internal/social"
	"groupme/internal/storage"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the JSON API, metrics and health checks",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.ListenAddr,
		flags.MetricsAddr,
		flags.SessionSecret,
		flags.SessionTTL,
		flags.NATSURL,
		flags.InitNATS,
		flags.S3Bucket,
		flags.S3Region,
		flags.S3Endpoint,
		flags.S3PublicURL,
		flags.S3AccessKey,
		flags.S3SecretKey,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistence.Provide(),
			provideRepositories(),
			nats.Provide(),
			pal.Provide[core.ObjectStorage](&storage.S3{}),
			pal.Provide(&auth.Sessions{}),
			pal.Provide(&social.Service{}),
			pal.Provide(&api.Server{}),
			pal.Provide(&metrics.Collector{}),
			pal.Provide(&metrics.HTTPServer{}),
		)
	},
}

func provideRepositories() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.PostRepository](&posts.Repository{}),
		pal.Provide[core.LikeRepository](&likes.Repository{}),
		pal.Provide[core.CommentRepository](&comments.Repository{}),
		pal.Provide[core.BlockRepository](&blocks.Repository{}),
		pal.Provide[core.SeenRepository](&seen.Repository{}),
		pal.Provide[core.UserRepository](&users.Repository{}),
		pal.Provide[core.ThemeRepository](&themes.Repository{}),
	)
}
