package main

import "github.com/andrekvist/burgersim/internal/adapters/cli"

func main() {
	cli.Execute()
}
