package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/arcade/internal/arena"
	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/godset"
	"github.com/Seednode/arcade/internal/history"
	"github.com/Seednode/arcade/internal/pusoy"
	"github.com/Seednode/arcade/internal/secure"
	"github.com/Seednode/arcade/internal/tanks"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
)

func securityHeaders(cfg *Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

// registerTenants mounts one tenant per game path. Apps that depend on
// a data file stay unmounted until that file is configured.
func registerTenants(cfg *Config, srv *gate.Server) ([]string, error) {
	logger := func(format string, args ...any) { logf(cfg, format, args...) }

	paths := []string{"/arena"}
	srv.Register("/arena", arena.New())

	if cfg.wordList != "" {
		words, err := pusoy.LoadWordList(cfg.wordList)
		if err != nil {
			return nil, err
		}

		opts := []pusoy.Option{
			pusoy.WithTurnTimeout(cfg.turnTimeout),
			pusoy.WithBotDelay(cfg.botDelay),
			pusoy.WithLogger(logger),
		}
		if cfg.botModel != "" {
			model, err := pusoy.LoadPassModel(cfg.botModel)
			if err != nil {
				return nil, err
			}
			opts = append(opts, pusoy.WithModel(model))
		}

		srv.Register("/pusoy", pusoy.New(words, opts...))
		paths = append(paths, "/pusoy")
	}

	if cfg.termBank != "" {
		terms, err := godset.Load(cfg.termBank)
		if err != nil {
			return nil, err
		}

		dump, err := godset.New(terms)
		if err != nil {
			return nil, err
		}
		srv.Register("/godset", dump)
		paths = append(paths, "/godset")

		questions := make([]tanks.QA, 0, len(terms))
		for _, term := range terms {
			questions = append(questions, tanks.QA{Term: term.Term, Definition: term.Definition})
		}
		battle, err := tanks.New(questions, tanks.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		srv.Register("/tanks", battle)
		paths = append(paths, "/tanks")

		if cfg.vocabLog != "" {
			vocab, err := history.NewVocabulary(terms, cfg.vocabLog)
			if err != nil {
				return nil, err
			}
			srv.Register("/history", history.New(vocab, history.WithLogger(logger)))
			paths = append(paths, "/history")
		}
	}

	if cfg.passwordLog != "" {
		honeypot, err := secure.New(cfg.passwordLog)
		if err != nil {
			return nil, err
		}
		srv.Register("/secure", honeypot)
		paths = append(paths, "/secure")
	}

	return paths, nil
}

func ServePage(ctx context.Context, cfg *Config, args []string) error {
	var err error

	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		time.Local, err = time.LoadLocation(timeZone)
		if err != nil {
			return err
		}
	}

	logf(cfg, "START: arcade v%s", releaseVersion)

	opts := []gate.Option{
		gate.WithMaxRequestBytes(cfg.maxRequest),
		gate.WithTickPeriod(cfg.tickPeriod),
		gate.WithLogger(func(format string, args ...any) { logf(cfg, format, args...) }),
	}
	if cfg.staticRoot != "" {
		opts = append(opts, gate.WithStaticRoot(cfg.staticRoot))
	}

	srv := gate.NewServer(opts...)

	paths, err := registerTenants(cfg, srv)
	if err != nil {
		return err
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- srv.ListenAndServe(serveCtx, net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)))
	}()

	var ops *http.Server
	if cfg.opsPort != 0 {
		cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

		ops = &http.Server{
			Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.opsPort)),
			Handler:           newOpsMux(cfg, paths, errs),
			IdleTimeout:       10 * time.Minute,
			ReadTimeout:       timeout,
			ReadHeaderTimeout: timeout,
			WriteTimeout:      timeout,
		}

		go func() {
			logf(cfg, "SERVE: Ops endpoints on http://%s%s/", ops.Addr, cfg.prefix)
			err := ops.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		err = nil
	case err = <-errs:
	}

	if ops != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		_ = ops.Shutdown(shutdownCtx)
	}

	return err
}
