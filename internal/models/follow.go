package models

// FollowState is the result of a toggle-follow: whether the edge exists
// after the call and how many users the follower now follows.
type FollowState struct {
	Following      bool `json:"following"`
	FollowingCount int  `json:"followingCount"`
}
