package main

import (
	"github.com/mj1618/undecorate/cmd"

	_ "github.com/mj1618/undecorate/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
