package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vullk4n/gestao-de-emails/internal/theme"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
