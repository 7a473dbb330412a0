package main

import "github.com/frahmantamala/employee-sync/cmd"

func main() {
	cmd.Execute()
}
