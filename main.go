package main

import "youtube-stats/cmd"

func main() {
	cmd.Execute()
}
