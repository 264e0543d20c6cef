package main

import "quantsim/internal/cli"

func main() {
	cli.Execute()
}
