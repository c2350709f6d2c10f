package main

import (
	"os"

	"github.com/fsdevblog/tinylink/internal/app"
	"github.com/fsdevblog/tinylink/internal/bmeta"
	"github.com/fsdevblog/tinylink/internal/config"
)

// Заполняются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	appConf := config.MustLoadConfig(os.Args[1:])

	a := app.Must(app.New(*appConf))

	bmeta.Log(a.Logger, buildVersion, buildDate, buildCommit)
	a.Logger.
		WithField("address", appConf.ServerAddress).
		WithField("storage", appConf.DBType).
		Info("Starting server")

	if err := a.Run(); err != nil {
		a.Logger.WithError(err).Fatal("server stopped with error")
	}
}
