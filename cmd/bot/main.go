package main

import (
	"github.com/nexconsult/receitanet-bx/internal/bootstrap"
	"github.com/nexconsult/receitanet-bx/internal/cli"
	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	cli.Execute(func(cfg *config.Config, log *logrus.Logger) (cli.Runner, error) {
		return bootstrap.NewBot(cfg, log)
	})
}
