package dp

import (
	"fmt"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// LCS fills the longest common subsequence table of two strings row by
// row (one row per rune of a) and then reads the subsequence back.
type LCS struct {
	step.Tracker
}

func NewLCS() *LCS { return &LCS{} }

func (l *LCS) Compute(a, b string) step.Sequence {
	return l.Sequence(func() {
		ra, rb := []rune(a), []rune(b)
		m, n := len(ra), len(rb)
		table := make([][]int, m+1)
		for i := range table {
			table[i] = make([]int, n+1)
		}
		comparisons := 0

		state := func(row int) step.State {
			return step.TableState(table, row).With("a", a).With("b", b)
		}

		l.Emit(step.OpInit, fmt.Sprintf("Finding LCS of %q and %q", a, b),
			state(0),
			step.Meta(step.Metadata{"str1": a, "str2": b, "m": m, "n": n, "comparisons": 0}),
		)

		for i := 1; i <= m; i++ {
			for j := 1; j <= n; j++ {
				comparisons++
				meta := step.Metadata{
					"i":           i,
					"j":           j,
					"char1":       string(ra[i-1]),
					"char2":       string(rb[j-1]),
					"comparisons": comparisons,
				}

				if ra[i-1] == rb[j-1] {
					table[i][j] = table[i-1][j-1] + 1
					meta["lcs_length"] = table[i][j]
					l.Emit("match", fmt.Sprintf("Match: '%c' == '%c', LCS length %d", ra[i-1], rb[j-1], table[i][j]),
						state(i),
						step.Highlights(step.Indices(step.ColorActive, j), step.Span(step.ColorSorted, 0, j)),
						step.Meta(meta),
						step.Source("lcs.match"),
					)
					continue
				}

				table[i][j] = max(table[i-1][j], table[i][j-1])
				meta["lcs_length"] = table[i][j]
				l.Emit("no_match", fmt.Sprintf("No match: '%c' != '%c', max(%d, %d) = %d", ra[i-1], rb[j-1], table[i-1][j], table[i][j-1], table[i][j]),
					state(i),
					step.Highlights(step.Indices(step.ColorComparing, j), step.Span(step.ColorVisited, 0, j)),
					step.Meta(meta),
				)
			}
		}

		var out []rune
		i, j := m, n
		for i > 0 && j > 0 {
			switch {
			case ra[i-1] == rb[j-1]:
				out = append(out, ra[i-1])
				l.Emit("trace", fmt.Sprintf("'%c' belongs to the subsequence", ra[i-1]),
					state(i),
					step.Highlights(step.Indices(step.ColorPath, j)),
					step.Meta(step.Metadata{"i": i, "j": j, "comparisons": comparisons}),
				)
				i--
				j--
			case table[i-1][j] > table[i][j-1]:
				i--
			default:
				j--
			}
		}
		for x, y := 0, len(out)-1; x < y; x, y = x+1, y-1 {
			out[x], out[y] = out[y], out[x]
		}
		lcs := string(out)

		l.Emit(step.OpComplete, fmt.Sprintf("LCS: %q (length: %d)", lcs, table[m][n]),
			state(m),
			step.Highlights(step.Indices(step.ColorSorted, n)),
			step.Meta(step.Metadata{
				"str1":        a,
				"str2":        b,
				"lcs":         lcs,
				"lcs_length":  table[m][n],
				"comparisons": comparisons,
			}),
		)
	})
}
