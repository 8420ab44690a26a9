package common

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"github.com/chis-dev/chisbot/common/config"

	// postgres dialect for gorm
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

const VERSION = "2.0.0"

var (
	GORM       *gorm.DB
	BotSession *discordgo.Session

	logger = logrus.WithField("p", "common")
)

var (
	ConfBotToken = config.RegisterOption("chisbot.bot_token", "Discord bot token", "")

	ConfPQHost     = config.RegisterOption("chisbot.pq_host", "Postgres host", "localhost")
	ConfPQUsername = config.RegisterOption("chisbot.pq_username", "Postgres user", "chisbot")
	ConfPQPassword = config.RegisterOption("chisbot.pq_password", "Postgres password", "")
	ConfPQDB       = config.RegisterOption("chisbot.pq_db", "Postgres database name", "chisbot")

	// Used to interpret time input from users without a registered timezone.
	ConfDefaultTimezone = config.RegisterOption("chisbot.timezone", "Fallback timezone for time parsing", "America/Los_Angeles")

	ConfLogLevel = config.RegisterOption("chisbot.log_level", "Log level (debug, info, warn, error)", "info")
)

// Init loads the config, sets up logging, connects to postgres and creates the
// discord session. It has to run before any plugin is registered.
func Init() error {
	config.AddSource(&config.EnvSource{})
	config.Load()

	if lvl, err := logrus.ParseLevel(ConfLogLevel.GetString()); err == nil {
		logrus.SetLevel(lvl)
	}

	if ConfBotToken.GetString() == "" {
		return errors.New("no bot token set (CHISBOT_BOT_TOKEN)")
	}

	err := connectDB(ConfPQHost.GetString(), ConfPQUsername.GetString(), ConfPQPassword.GetString(), ConfPQDB.GetString())
	if err != nil {
		return errors.WithMessage(err, "connectDB")
	}

	BotSession, err = discordgo.New("Bot " + ConfBotToken.GetString())
	if err != nil {
		return errors.WithMessage(err, "discordgo.New")
	}
	BotSession.Identify.Intents = discordgo.IntentsGuilds

	return nil
}

func connectDB(host, user, pass, dbName string) error {
	if pass != "" {
		pass = " password='" + pass + "'"
	}

	db, err := gorm.Open("postgres", fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable%s", host, user, dbName, pass))
	if err != nil {
		return err
	}

	db.SetLogger(&GORMLogger{})
	db.DB().SetMaxOpenConns(10)
	GORM = db

	logger.Info("connected to postgres")
	return nil
}
