package main

import "github.com/pfrederiksen/lastfm-events/internal/cli"

func main() {
	cli.Execute()
}
