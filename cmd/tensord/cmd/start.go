package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tensord/config"
	"tensord/heartbeat"
	"tensord/log"
	"tensord/server"
	"tensord/service"
	"tensord/store"
	"tensord/version"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the daemon.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.ReadConfigFile(configuredHomeDir)
		if err != nil {
			return errors.Wrap(err, "error reading config file")
		}
		logLevel, err := log.NewLevel(cfg.LogLevel)
		if err != nil {
			return errors.Wrap(err, "error parsing log level")
		}
		log.SetLevel(logLevel)
		lgr := log.WithModule("main")

		lgr.Info("starting tensord", "git_commit", version.GitCommit, "git_tag", version.GitTag)

		dbPath := config.ExpandDBPath(configuredHomeDir)
		lgr.Info("opening db", "path", dbPath)
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		lgr.Info("loading model", "name", cfg.Model.Name)
		model, err := store.GetModel(db, cfg.Model.Name)
		if err != nil {
			return errors.Wrapf(err, "error loading model %s", cfg.Model.Name)
		}

		listener := server.NewListener(cfg.Serve.Host, cfg.Serve.Port, model)
		listener.IdleTimeout = config.ConvertDuration(cfg.Serve.IdleTimeoutMS, time.Millisecond)
		listener.MaxElements = cfg.Serve.MaxElements
		listener.SetMaxInboundConns(cfg.Serve.MaxInboundConns)
		listener.SetAcceptRate(cfg.Serve.AcceptRate, cfg.Serve.AcceptBurst)

		services := []service.Service{listener}
		if cfg.Heartbeat.URL != "" {
			hb := heartbeat.NewHeartbeater(
				cfg.Heartbeat.URL,
				cfg.Heartbeat.Moniker,
				cfg.Model.Name,
				listener.ExchangeStats,
			)
			hb.Interval = config.ConvertDuration(cfg.Heartbeat.IntervalMS, time.Millisecond)
			hb.Timeout = config.ConvertDuration(cfg.Heartbeat.TimeoutMS, time.Millisecond)
			services = append(services, hb)
		}

		lgr.Info("starting services")
		for _, s := range services {
			go func(s service.Service) {
				if err := s.Start(); err != nil {
					lgr.Error("failed to start service", "err", err)
				}
			}(s)
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		sig := <-sigs
		lgr.Info("shutting down", "signal", sig)
		for i := len(services) - 1; i >= 0; i-- {
			if err := services[i].Stop(); err != nil {
				lgr.Error("failed to stop service", "err", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
