// Package bot runs the discord gateway side: it registers plugin commands,
// syncs them with discord and routes interactions to their handlers.
package bot

import (
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"

	"github.com/chis-dev/chisbot/commands"
	"github.com/chis-dev/chisbot/common"
)

var logger = common.GetFixedPrefixLogger("bot")

// Run connects the bot and blocks until SIGINT or SIGTERM.
func Run() error {
	for _, p := range common.Plugins {
		if provider, ok := p.(commands.CommandProvider); ok {
			provider.AddCommands()
			logger.WithField("plugin", p.PluginInfo().SysName).Info("added commands")
		}
	}

	common.BotSession.AddHandler(commands.HandleInteractionCreate)

	err := common.BotSession.Open()
	if err != nil {
		return errors.WithMessage(err, "failed opening gateway connection")
	}
	defer common.BotSession.Close()

	err = syncCommands()
	if err != nil {
		return err
	}

	logger.Info("bot is running, press ctrl-c to exit")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("shutting down")
	return nil
}

// syncCommands overwrites the global application command set with the
// registered ones, so removed commands disappear from discord too.
func syncCommands() error {
	appID := common.BotSession.State.User.ID

	synced, err := common.BotSession.ApplicationCommandBulkOverwrite(appID, "", commands.ApplicationCommands())
	if err != nil {
		return errors.WithMessage(err, "failed syncing application commands")
	}

	logger.WithField("count", len(synced)).Info("synced application commands")
	return nil
}
