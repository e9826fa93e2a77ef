package main

import "github.com/rishiparsad75/pixland-face-service/cmd"

func main() {
	cmd.Execute()
}
