package groupme

import (
	"context"

	"groupme/pkg/optimistic"
)

// LikeState is what a post card shows for the current user.
type LikeState struct {
	Liked bool
	Count int
}

// LikeToggle is the like button of one post for one user.
type LikeToggle struct {
	UserID uint
	PostID uint

	mutation *optimistic.Mutation[LikeState]
}

func NewLikeToggle(userID, postID uint, initial LikeState) *LikeToggle {
	return &LikeToggle{
		UserID:   userID,
		PostID:   postID,
		mutation: optimistic.New(initial),
	}
}

func (t *LikeToggle) State() LikeState {
	return t.mutation.Value()
}

func (t *LikeToggle) Phase() optimistic.State {
	return t.mutation.State()
}

// ToggleLike flips the like immediately and settles it with the server's like count. On failure the previous
// state is restored and the error returned. Toggling while a previous toggle is in flight fails with
// optimistic.ErrPending.
func (c *Client) ToggleLike(ctx context.Context, toggle *LikeToggle) error {
	flip := func(current LikeState) LikeState {
		if current.Liked {
			return LikeState{Liked: false, Count: max(current.Count-1, 0)}
		}
		return LikeState{Liked: true, Count: current.Count + 1}
	}

	return toggle.mutation.Run(ctx, flip, func(ctx context.Context, shown LikeState) (LikeState, error) {
		send := c.Unlike
		if shown.Liked {
			send = c.Like
		}

		count, err := send(ctx, toggle.UserID, toggle.PostID)
		if err != nil {
			return LikeState{}, err
		}
		return LikeState{Liked: shown.Liked, Count: count}, nil
	})
}
