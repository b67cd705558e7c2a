package main

import "catalog-mirror/cmd"

func main() {
	cmd.Execute()
}
