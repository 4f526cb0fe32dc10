/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/f1-interval-tracker-go/cmd"

func main() {
	cmd.Execute()
}
