package main

import (
	sgcmd "github.com/initializ/scriptgrant/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	sgcmd.SetVersionInfo(version, commit)
	sgcmd.Execute()
}
