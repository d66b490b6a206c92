package main

import (
	"github.com/alecthomas/kong"

	"github.com/macleann/favameal/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("FavaMeal"), kong.Description("FavaMeal is a restaurant and meal favorites tracking service."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
