// Package templates provides embedded template files for scriptgrant.
package templates

import "embed"

//go:embed init
var FS embed.FS

// GetInitTemplate reads a template file from the init directory.
func GetInitTemplate(path string) (string, error) {
	data, err := FS.ReadFile("init/" + path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
