package consts

const (
	MimePrefixImage = "image"
)

const (
	NotificationTypeLike    int8 = 1
	NotificationTypeComment int8 = 2
)

const (
	DefaultFeedPageSize = 10
)
