package main

import "Storefront/cmd"

func main() {
	cmd.Execute()
}
