package graphs

import (
	"embed"
	"fmt"
)

//go:embed bfs.go dfs.go dijkstra.go
var sources embed.FS

func Source(file string) (string, error) {
	b, err := sources.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("graphs: %w", err)
	}
	return string(b), nil
}
