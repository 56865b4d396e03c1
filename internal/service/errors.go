package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrMissingFields        = errors.New("缺少必要参数")
	ErrInvalidDuration      = errors.New("无效的有效期格式")
	ErrCooldownActive       = errors.New("发帖过于频繁，请稍后再试")
	ErrImageStore           = errors.New("图片上传失败")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrCommentNotFound      = errors.New("评论不存在")
	ErrReplyNotFound        = errors.New("回复不存在")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrAlreadyReacted       = errors.New("重复操作")
	ErrNotReacted           = errors.New("尚未点赞")
	ErrNotificationNotFound = errors.New("通知不存在")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrMissingFields:        BadRequest,
	ErrInvalidDuration:      BadRequest,
	ErrCooldownActive:       TooManyRequests,
	ErrImageStore:           InternalServerError,
	ErrFileNotSupported:     BadRequest,
	ErrPostNotFound:         NotFound,
	ErrCommentNotFound:      NotFound,
	ErrReplyNotFound:        NotFound,
	ErrUserNotFound:         NotFound,
	ErrAlreadyReacted:       BadRequest,
	ErrNotReacted:           BadRequest,
	ErrNotificationNotFound: NotFound,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
