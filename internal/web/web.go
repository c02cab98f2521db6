// Package web хранит оболочку страницы, которую отдаёт сервис и заполняет клиент.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// IndexPath — путь страницы внутри Static.
const IndexPath = "index.html"

// Static возвращает файловую систему с содержимым каталога static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// каталог встроен при сборке, ошибка здесь невозможна
		panic(err)
	}
	return sub
}

// Index возвращает HTML оболочки страницы.
func Index() ([]byte, error) {
	return fs.ReadFile(Static(), IndexPath)
}
