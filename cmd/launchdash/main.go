package main

import "github.com/dbsmedya/launchdash/cmd/launchdash/cmd"

func main() {
	cmd.Execute()
}
