package main

import "github.com/openhouse-app/openhouse/cmd/openhouse/cmd"

func main() {
	cmd.Execute()
}
