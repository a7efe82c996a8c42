package main

import "github.com/usnistgov/NED/cmd"

func main() {
	cmd.Execute()
}
