package search

import (
	"embed"
	"fmt"
)

//go:embed linear.go binary.go
var sources embed.FS

func Source(file string) (string, error) {
	b, err := sources.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	return string(b), nil
}
