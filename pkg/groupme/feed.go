package groupme

import (
	"context"
	"strconv"

	"groupme/internal/core"
)

const (
	feedPath = "/api/feed"
	postPath = "/api/posts/{id}"
)

func (c *Client) Feed(ctx context.Context, page int) (*core.FeedPage, error) {
	res, err := c.r(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&core.FeedPage{}).
		Get(feedPath)
	if err := check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*core.FeedPage), nil
}

func (c *Client) Post(ctx context.Context, id uint) (*core.Post, error) {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatUint(uint64(id), 10)).
		SetResult(&core.Post{}).
		Get(postPath)
	if err := check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*core.Post), nil
}
