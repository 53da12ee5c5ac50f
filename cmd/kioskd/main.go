package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cpearam/fastfood-kiosk/config"
	"github.com/cpearam/fastfood-kiosk/internal/adminapi"
	"github.com/cpearam/fastfood-kiosk/internal/app"
	"github.com/cpearam/fastfood-kiosk/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "/etc/kioskd.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate database tables, exit")
)

var gitVersion = "unknown"

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		fmt.Println(gitVersion)
		os.Exit(0)
	}

	appConfig := config.LoadConfig(*conffile)

	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(appConfig, application.DB())
	adminapi.InitRouter()

	if err := webserver.Listen(); err != nil {
		zap.S().Fatal(err)
	}
}
