// package swagger serves the embedded OpenAPI document together with a
// Swagger UI page that renders it.
package swagger

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed swagger-ui/*
var content embed.FS

// GetHandler serves index.html and openapi.yaml from the embedded directory.
func GetHandler() (http.Handler, error) {
	subFS, err := fs.Sub(content, "swagger-ui")
	if err != nil {
		return nil, err
	}

	return http.FileServer(http.FS(subFS)), nil
}

