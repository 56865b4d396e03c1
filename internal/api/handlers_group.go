package api

import "Flicker/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostOpsHandler *handler.PostOpsHandler
	UserOpsHandler *handler.UserOpsHandler
}
