package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/k0kubun/pp"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"resty.dev/v3"

	"groupme/internal/cmd/flags"
	"groupme/internal/config"
	"groupme/internal/core"
	"groupme/pkg/groupme"
)

var feedCmd = &cli.Command{
	Name:  "feed",
	Usage: "Print one page of the feed of a running server",
	Flags: []cli.Flag{
		flags.APIURL,
		flags.APIToken,
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "The page to print",
			Value:   1,
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck

		page, err := client.Feed(ctx, int(c.Int("page")))
		if err != nil {
			return err
		}

		pp.Printf("%+v\n", page)
		return nil
	},
}

var likeCmd = &cli.Command{
	Name:  "like",
	Usage: "Toggle the like of a post on a running server",
	Flags: []cli.Flag{
		flags.APIURL,
		flags.APIToken,
		&cli.UintFlag{
			Name:     "post",
			Usage:    "The post to like or unlike",
			Required: true,
		},
		&cli.UintFlag{
			Name:     "user",
			Usage:    "The user the session token belongs to",
			Required: true,
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck

		userID, postID := uint(c.Uint("user")), uint(c.Uint("post"))

		post, err := client.Post(ctx, postID)
		if err != nil {
			return err
		}

		toggle := groupme.NewLikeToggle(userID, postID, groupme.LikeState{
			Liked: lo.ContainsBy(post.Likes, func(like core.Like) bool { return like.UserID == userID }),
			Count: post.LikeCount,
		})

		if err := client.ToggleLike(ctx, toggle); err != nil {
			return fmt.Errorf("toggle like: %w", err)
		}

		pp.Printf("%+v\n", toggle.State())
		return nil
	},
}

func newClient(c *cli.Command) (*groupme.Client, error) {
	cfg, err := parseConfig(c)
	if err != nil {
		return nil, err
	}

	return groupme.NewClient(clientConfig(cfg)), nil
}

func clientConfig(cfg *config.Config) *groupme.ClientConfig {
	return &groupme.ClientConfig{
		BaseURL:           cfg.APIURL,
		Token:             cfg.APIToken,
		TransportSettings: groupme.DefaultTransportSettings,

		ResponseMiddlewares: []resty.ResponseMiddleware{func(_ *resty.Client, response *resty.Response) error {
			reqURL, err := url.Parse(response.Request.URL)
			if err != nil {
				return err
			}

			slog.Debug("API request",
				"method", response.Request.Method,
				"path", reqURL.Path,
				"status", response.Status(),
				"duration", response.Duration())
			return nil
		}},
	}
}
