package main

import "github.com/jsphweid/chordharp/cmd"

func main() {
	cmd.Execute()
}
