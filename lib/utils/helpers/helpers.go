package helpers

import (
	"context"
	"path/filepath"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// разрешенные расширения загружаемых документов
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func IsAllowedFileExt(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	return allowedExtensions[ext]
}
