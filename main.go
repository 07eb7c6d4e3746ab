package main

import (
	"log"
	"os"

	"github.com/Rakhulsr/go-addressbook/app/cmd"
	"github.com/Rakhulsr/go-addressbook/app/configs"
)

func main() {
	env := configs.LoadEnv()

	if err := cmd.RunCli(env, os.Args); err != nil {
		log.Fatal(err)
	}
}
