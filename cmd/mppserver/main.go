// Command mppserver runs an MPP server: server <listen-address> <port>
// <num-threads> <db-config-path> (§6.5). Flags add the ambient operational
// surface (metrics, pprof, debug logging) the positional arguments leave
// out.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"

	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vcarri/mppd/handler"
	"github.com/vcarri/mppd/transport"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	metricsAddr := flag.String("metrics-addr", "127.0.0.1:9090", "address for /metrics and /healthz")
	flag.Parse()

	args := flag.Args()
	if len(args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: mppserver [flags] <listen-address> <port> <num-threads> <db-config-path>")
		os.Exit(2)
	}
	listenAddr, portArg, threadsArg, dbConfigPath := args[0], args[1], args[2], args[3]

	port, err := strconv.Atoi(portArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad port %q: %s\n", portArg, err)
		os.Exit(2)
	}
	threads, err := strconv.Atoi(threadsArg)
	if err != nil || threads < 1 {
		fmt.Fprintf(os.Stderr, "bad thread count %q\n", threadsArg)
		os.Exit(2)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05.000",
	}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	log.Info().Int("cpus", runtime.NumCPU()).Msg("runtime")

	lookup, closeLookup, err := openLookup(dbConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open noun lookup")
	}
	defer closeLookup()

	h := handler.New(lookup, log.Logger)

	addr := fmt.Sprintf("%s:%d", listenAddr, port)
	srv, err := transport.NewServer(addr, threads, h, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("start server")
	}

	go serveMetrics(*metricsAddr)

	log.Info().Str("addr", addr).Int("reactors", threads).Msg("mppserver listening")
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func openLookup(dbPath string) (handler.Lookup, func(), error) {
	if dbPath == "" {
		return handler.NewWordlistLookup(nil), func() {}, nil
	}
	l, err := handler.OpenSQLiteLookup(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Close() }, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Info().Str("addr", addr).Msg("metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server exited")
	}
}
