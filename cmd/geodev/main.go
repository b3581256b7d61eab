package main

import "github.com/gmao-si/geodev/cmd/geodev/internal"

func main() {
	internal.Execute()
}
