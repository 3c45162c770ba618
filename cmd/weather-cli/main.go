package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"checkweather/config"
	"checkweather/internal/client"
	"checkweather/internal/geo"
	"checkweather/internal/widget"
	"checkweather/pkg/logger"
)

const (
	geoCommand  = ":geo"
	quitCommand = ":q"
)

func main() {
	city := flag.String("city", "", "look up the weather for a city")
	useGeo := flag.Bool("geo", false, "look up the weather at the current location")
	interactive := flag.Bool("i", false, "read queries from stdin, one per line ("+geoCommand+" for current location, "+quitCommand+" to quit)")
	plain := flag.Bool("plain", false, "print icon class names instead of symbols")
	flag.Parse()

	cnf, err := config.NewClientConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	l, err := logger.New(logger.Options{
		AppName: "weather-cli",
		Level:   cnf.LogLevel,
		Format:  "console",
	}, os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer l.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	glyphs := widget.SymbolGlyphs
	if *plain {
		glyphs = widget.ClassGlyphs
	}

	opts := []widget.Option{
		widget.WithLogger(l),
		widget.WithLocator(geo.NewIPLocator(cnf.GeolocationURL, nil, l)),
		widget.WithListener(func(st widget.QueryState) {
			if err := widget.RenderWith(os.Stdout, st, glyphs); err != nil {
				l.Error(err)
			}
		}),
	}

	initial := strings.TrimSpace(*city)
	if initial == "" && !*useGeo {
		initial = cnf.DefaultCity
	}
	if initial != "" {
		opts = append(opts, widget.WithInitialCity(initial))
	} else if !*useGeo && !*interactive {
		flag.Usage()
		os.Exit(2)
	}

	controller := widget.NewController(client.New(cnf.BaseURL, nil, l), opts...)

	switch {
	case *useGeo:
		controller.SubmitGeoQuery(ctx)
	default:
		controller.LoadInitial(ctx)
	}

	if !*interactive {
		if controller.State().Status() == widget.StatusError {
			os.Exit(1)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintf(os.Stderr, "city> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case quitCommand:
			return
		case geoCommand:
			controller.SubmitGeoQuery(ctx)
		default:
			controller.SubmitCityQuery(ctx, line)
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(os.Stderr, "city> ")
	}
}
