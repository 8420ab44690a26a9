package main

import (
	"github.com/sirupsen/logrus"

	"github.com/chis-dev/chisbot/bot"
	"github.com/chis-dev/chisbot/common"
	"github.com/chis-dev/chisbot/plan"
)

func main() {
	err := common.Init()
	if err != nil {
		logrus.WithError(err).Fatal("failed initializing")
	}

	plan.RegisterPlugin()

	err = bot.Run()
	if err != nil {
		logrus.WithError(err).Fatal("bot stopped")
	}
}
