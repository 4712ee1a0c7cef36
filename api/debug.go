//go:build debug
// +build debug

package api

import "fmt"

func decrlevel(level, n int64) int64 {
	if n > level {
		panic(fmt.Errorf("meter underflow: decrement %v on level %v", n, level))
	}
	return level - n
}
