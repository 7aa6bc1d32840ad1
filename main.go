package main

import (
	"os"
	"runtime/debug"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/cmd"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("CLIENT CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
