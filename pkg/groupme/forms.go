package groupme

import (
	"context"
	"strconv"

	"groupme/internal/auth"
	"groupme/internal/core"
)

const (
	newLikePath    = "/api/forms/newlike"
	deleteLikePath = "/api/forms/deletelike"
	newCommentPath = "/api/forms/newcomment"
	blockPath      = "/api/forms/block"
	loginPath      = "/login"
)

func id(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

type likeAck struct {
	ack
	LikeCount int `json:"likeCount"`
}

// Like likes the post as userID and returns the post's like count afterwards.
func (c *Client) Like(ctx context.Context, userID, postID uint) (int, error) {
	return c.toggle(ctx, newLikePath, userID, postID)
}

// Unlike removes the like and returns the post's like count afterwards.
func (c *Client) Unlike(ctx context.Context, userID, postID uint) (int, error) {
	return c.toggle(ctx, deleteLikePath, userID, postID)
}

func (c *Client) toggle(ctx context.Context, path string, userID, postID uint) (int, error) {
	res, err := c.r(ctx).
		SetFormData(map[string]string{"userId": id(userID), "postId": id(postID)}).
		SetResult(&likeAck{}).
		Post(path)
	if err := check(res, err); err != nil {
		return 0, err
	}

	return res.Result().(*likeAck).LikeCount, nil
}

func (c *Client) Comment(ctx context.Context, postID uint, body string) (*core.Comment, error) {
	type created struct {
		Comment *core.Comment `json:"comment"`
	}

	res, err := c.r(ctx).
		SetFormData(map[string]string{"postId": id(postID), "comment": body}).
		SetResult(&created{}).
		Post(newCommentPath)
	if err := check(res, err); err != nil {
		return nil, err
	}

	return res.Result().(*created).Comment, nil
}

func (c *Client) Block(ctx context.Context, postID uint) error {
	return check(c.r(ctx).
		SetFormData(map[string]string{"postId": id(postID)}).
		Post(blockPath))
}

// Login signs in and authenticates every following request with the returned session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	res, err := c.r(ctx).
		SetFormData(map[string]string{"email": email, "password": password}).
		Post(loginPath)
	if err := check(res, err); err != nil {
		return err
	}

	for _, cookie := range res.Cookies() {
		if cookie.Name == auth.CookieName && cookie.Value != "" {
			c.client.SetAuthToken(cookie.Value)
			return nil
		}
	}
	return ErrNoSession
}
