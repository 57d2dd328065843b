package main

import (
	"github.com/ThatOtherAndrew/Snowfall/cmd"
)

func main() {
	cmd.Execute()
}
