package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newCmd(newTerminalPrompter(os.Stdin, os.Stdout)).Execute(); err != nil {
		logrus.WithError(err).Fatal("japjap-admin failed")
	}
}
