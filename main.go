package main

import "audiodesk/cmd"

func main() {
	cmd.Execute()
}
