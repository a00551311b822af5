package main

import "github.com/EZP98/fitness-tracker/cmd/fittrack"

func main() {
	fittrack.Execute()
}
