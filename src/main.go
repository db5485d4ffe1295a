package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"twinlift/src/config"
	"twinlift/src/elev"
	"twinlift/src/executor"
	"twinlift/src/panel"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logFile, err := elev.InitLogger(config.ParseLogLevel(cfg.LogLevel), cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Stopped on fault", "err", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cars := make(map[string]*executor.Car, len(cfg.Cars))
	for _, id := range cfg.Cars {
		car := executor.NewCar(id, cfg)
		cars[id] = car
		g.Go(func() error { return car.Run(ctx) })
	}

	// Scanning stdin cannot be interrupted, so the reader stays outside the group.
	lines := make(chan panel.Line)
	go func() {
		if err := panel.Read(ctx, os.Stdin, cfg.Cars, lines); err != nil {
			slog.Error("Panel input failed", "err", err)
		}
	}()

	g.Go(func() error {
		// quit stops the cars at once; end of input lets them finish what they were given.
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					settle(ctx, cars)
					return nil
				}
				if line.Verb == panel.Quit {
					return nil
				}
				dispatch(ctx, cfg, cars, line)
			}
		}
	})

	slog.Info("Elevators initialized", "cars", cfg.Cars, "floors", cfg.TotalFloors)
	return g.Wait()
}

func settle(ctx context.Context, cars map[string]*executor.Car) {
	slog.Info("Input ended, waiting for cars to settle")
	for id, car := range cars {
		if err := car.WaitSettled(ctx); err != nil {
			slog.Debug("Car not settled", "car", id, "err", err)
			return
		}
	}
}

func dispatch(ctx context.Context, cfg config.Config, cars map[string]*executor.Car, line panel.Line) {
	switch line.Verb {
	case panel.Press:
		if err := cars[line.Command.CarID].Submit(ctx, line.Command.Request); err != nil {
			slog.Debug("Request not delivered", "car", line.Command.CarID, "err", err)
		}
	case panel.ShowState:
		for _, id := range cfg.Cars {
			if line.Command.CarID != "" && line.Command.CarID != id {
				continue
			}
			st, err := cars[id].State(ctx)
			if err != nil {
				return
			}
			fmt.Println(st)
		}
	}
}
