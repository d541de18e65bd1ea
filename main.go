package main

import "github.com/goalwing/goalwing/cmd"

func main() {
	cmd.Execute()
}
