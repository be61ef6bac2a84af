package main

import "github.com/sellerhub/market-mock-api/cmd"

func main() {
	cmd.Execute()
}
