// +build debug

package ttt

import (
	"fmt"

	"github.com/gorgonia/noughts/game"
)

func checkPos(pos game.Single) {
	if pos < 0 || pos >= Size {
		panic(fmt.Sprintf("Cell %d out of range [0, %d)", pos, Size))
	}
}
