package trees

import (
	"embed"
	"fmt"
)

//go:embed node.go bst.go traversal.go
var sources embed.FS

func Source(file string) (string, error) {
	b, err := sources.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("trees: %w", err)
	}
	return string(b), nil
}
