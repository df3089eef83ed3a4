package main

import "github.com/golanpiyush/adbwifi/cmd"

func main() {
	cmd.Execute()
}
