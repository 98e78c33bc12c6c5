// +build !debug

package ttt

import "github.com/gorgonia/noughts/game"

func checkPos(pos game.Single) {}
