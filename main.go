package main

import (
	"github.com/yeisme/ptserve/cmd"
)

func main() {
	cmd.Execute()
}
