package main

import "libdisk/cmd"

func main() {
	cmd.Execute()
}
