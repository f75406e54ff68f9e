package main

import "github.com/saadjs/biolink/cmd/biolink"

func main() {
	biolink.Execute()
}
