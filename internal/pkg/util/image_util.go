package util

import (
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// GetSafeContentType 基于文件头嗅探类型，不信任客户端声明的 Content-Type
func GetSafeContentType(file io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// GetImageDimensions 解码图片获得宽高，读完后把读取位置拨回开头
func GetImageDimensions(file io.ReadSeeker) (int, int, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return 0, 0, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
