package subscriptions

import "errors"

var (
	ErrAuthorNotFound    = errors.New("author not found")
	ErrSelfSubscribe     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)
