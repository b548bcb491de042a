package dp

import (
	"embed"
	"fmt"
)

//go:embed knapsack.go lcs.go fibonacci.go
var sources embed.FS

func Source(file string) (string, error) {
	b, err := sources.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("dp: %w", err)
	}
	return string(b), nil
}
