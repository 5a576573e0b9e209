package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/finbooks/accounting-reports/internal/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
