package main

import "food-ordering/cmd"

func main() {
	cmd.Execute()
}
