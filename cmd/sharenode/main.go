package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/debugstat"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/config"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/remoteshare"
	"github.com/anyproto/any-share/remoteshare/memremote"
	"github.com/anyproto/any-share/sharecoordinator"
)

var log = logger.NewNamed("main")

var (
	flagConfigFile = flag.String("c", "etc/config.yml", "path to config file")
	flagVersion    = flag.Bool("v", false, "show version and exit")
	flagHelp       = flag.Bool("h", false, "show help and exit")
	flagShare      = flag.String("share", "", "create a share for the given resource id after start")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println(app.VersionDescription())
		return
	}
	if *flagHelp {
		flag.PrintDefaults()
		return
	}

	ctx := context.Background()
	a := new(app.App)

	conf, err := config.NewFromFile(*flagConfigFile)
	if err != nil {
		log.Fatal("can't open config file", zap.Error(err))
	}
	conf.Log.ApplyGlobal()

	a.Register(conf)
	Bootstrap(a)
	if err = a.Start(ctx); err != nil {
		log.Fatal("can't start app", zap.Error(err))
	}
	log.Info("app started", zap.String("version", a.Version()))

	coordinator := a.MustComponent(sharecoordinator.CName).(sharecoordinator.ShareCoordinator)
	coordinator.Subscribe("log", logEvent)
	if *flagShare != "" {
		root := &remoteshare.Record{Id: *flagShare, Type: "project"}
		if share, err := coordinator.CreateShare(ctx, root, *flagShare); err != nil {
			log.Warn("can't create share", zap.String("resourceId", *flagShare), zap.Error(err))
		} else {
			log.Info("share ready", zap.String("resourceId", *flagShare), zap.String("shareId", share.Id))
		}
	}

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-exit
	log.Info("received exit signal, stop app", zap.String("signal", fmt.Sprint(sig)))
	log.Info("sharing stat", zap.Any("stat", a.MustComponent(debugstat.CName).(debugstat.StatService).GetStat()))

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		log.Fatal("close error", zap.Error(err))
	}
}

func Bootstrap(a *app.App) {
	a.Register(metric.New()).
		Register(debugstat.New()).
		Register(memremote.New()).
		Register(sharecoordinator.New())
}

func logEvent(e sharecoordinator.Event) {
	switch e.Kind {
	case sharecoordinator.EventStatusChanged:
		log.Info("sharing status changed", zap.String("resourceId", e.ResourceId), zap.Stringer("status", e.Status))
	case sharecoordinator.EventInvitationsChanged:
		log.Info("pending invitations changed", zap.Int("count", len(e.Invitations)))
	}
}
