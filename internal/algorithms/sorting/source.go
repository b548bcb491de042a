package sorting

import (
	"embed"
	"fmt"
)

//go:embed bubble.go insertion.go selection.go quick.go merge.go heap.go
var sources embed.FS

// Source returns the text of one of this package's implementation files.
func Source(file string) (string, error) {
	b, err := sources.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("sorting: %w", err)
	}
	return string(b), nil
}
