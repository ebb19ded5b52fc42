package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/zjurelinac/East/src/database"
	"github.com/zjurelinac/East/src/handler"
	"github.com/zjurelinac/East/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "East CMD"
	app.Usage = "The East command line interface"

	app.Commands = []cli.Command{
		serveCMD,
		migrateCMD,
		docsCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the API server",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Connect to the database, run migrations and serve the API`,
	}
	migrateCMD = cli.Command{
		Name:        "migrate",
		Usage:       "run migrations and exit",
		Action:      migrateAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Connect to the database, run schema and data migrations, and exit`,
	}
	docsCMD = cli.Command{
		Name:        "docs",
		Usage:       "print the response documentation",
		Action:      docsAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Print the generated JSON response documentation for all models`,
	}
)

func serveAction(_ *cli.Context) error {

	logrus.Info("Starting API server CMD")
	logrus.WithField("cmd", "serve")

	if err := database.Init(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	server.StartServer(server.GetConfig().Port)

	return nil
}

func migrateAction(_ *cli.Context) error {

	logrus.Info("Starting migrate CMD")
	logrus.WithField("cmd", "migrate")

	if err := database.Init(); err != nil {
		logrus.WithError(err).Error("Failed to run migrations")
		return err
	}

	logrus.Info("Migrations completed")

	return nil
}

// docsAction prints the documentation without touching the database.
func docsAction(_ *cli.Context) error {

	logrus.Info("Starting docs CMD")
	logrus.WithField("cmd", "docs")

	docs, err := handler.BuildDocs()
	if err != nil {
		logrus.WithError(err).Error("Failed to build docs")
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(docs)
}
