package consts

const (
	PostLikeKey     = "post:like:"
	PostCommentKey  = "post:comment:"
	PostDirtyKey    = "post:dirty"
	CommentLikeKey  = "comment:like:"
	CommentDirtyKey = "comment:dirty"
	ReplyLikeKey    = "reply:like:"
	ReplyDirtyKey   = "reply:dirty"
)

const (
	PurgeLock = "post:purge:lock"
)
