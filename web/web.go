// Package web содержит главную страницу и ее стили.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed index.html style.css
var embedded embed.FS

// Assets возвращает встроенные файлы, а если задан dir - файлы из этого каталога
func Assets(dir string) fs.FS {
	if len(dir) == 0 {
		return embedded
	}
	return os.DirFS(dir)
}
