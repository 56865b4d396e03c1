package response

import (
	"Flicker/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// 信封级错误文案，历史客户端按字符串匹配，不能改
const (
	MsgMissingParameters    = "Missing Parameters"
	MsgInvalidOperation     = "Invalid Operation"
	MsgInvalidRequestMethod = "Invalid Request Method"
)

// Success 成功返回封装，业务结果一律走 HTTP 200
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"error": message,
	})
}

// MissingParameters 缺少 operation 或 json 参数
func MissingParameters(c *gin.Context) {
	Fail(c, MsgMissingParameters)
}

// InvalidOperation 未知操作名
func InvalidOperation(c *gin.Context) {
	Fail(c, MsgInvalidOperation)
}

// InvalidRequestMethod 不支持的请求方法
func InvalidRequestMethod(c *gin.Context) {
	Fail(c, MsgInvalidRequestMethod)
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, service.ErrMissingFields.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, service.ErrParamInvalid.Error())
		return
	}

	if _, ok := service.ErrorMap[err]; !ok {
		log.Error("Error", "err", err)
		Fail(c, service.UnExpectedError.Error())
		return
	}
	Fail(c, err.Error())
}
