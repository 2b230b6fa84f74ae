package main

import "github.com/rapestimate/estimate-parser/cmd"

func main() {
	cmd.Execute()
}
