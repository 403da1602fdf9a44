package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/flightrack/track-server/api"
	"github.com/flightrack/track-server/export"
	"github.com/flightrack/track-server/xmpp"

	_ "net/http/pprof"
)

func main() {

	fs := flag.NewFlagSet("track-server", flag.ExitOnError)
	var (
		port         = fs.Int("port", 8888, "listen port")
		debug        = fs.Bool("debug", false, "debug logs")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile predict runs")
		exportsDir   = fs.String("exports-dir", "exports", "directory for run export files")
		exportsTTL   = fs.Duration("exports-ttl", time.Hour, "how long run export files are kept")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	x := xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}

	store, err := export.InitStore(*exportsDir, *exportsTTL)
	if err != nil {
		log.Fatalf("init export store: %v", err)
	}

	router := api.InitServer(*cpuprofile, store, &x)

	log.Infof("Start server on port %d", *port)

	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port),
		handlers.CORS()(handlers.CombinedLoggingHandler(os.Stdout, router))))
}
