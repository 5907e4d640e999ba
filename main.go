package main

import "github.com/alibekshomurotov/Bot/cmd"

func main() {
	cmd.Run()
}
