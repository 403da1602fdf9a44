package xmpp

import (
	"crypto/tls"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	// Xmpp notifies an operator about finished prediction runs. With an
	// empty config it does nothing.
	Xmpp struct {
		Config Config
	}
)

func serverName(jid string) string {
	return strings.Split(jid, "@")[1]
}

func (x Xmpp) Send(message string) error {

	if len(x.Config.Jid) == 0 || len(x.Config.Password) == 0 || len(x.Config.To) == 0 {
		log.Debug("xmpp not configured, skipping notification")
		return nil
	}

	if len(x.Config.Host) == 0 {
		x.Config.Host = serverName(x.Config.Jid)
	}

	xmpp.DefaultConfig = tls.Config{
		InsecureSkipVerify: true,
	}

	options := xmpp.Options{
		Host:     x.Config.Host,
		User:     x.Config.Jid,
		Password: x.Config.Password,
		NoTLS:    true,
		StartTLS: true,
		Session:  false,
		Status:   "xa",
	}

	talk, err := options.NewClient()
	if err != nil {
		log.Warnf("xmpp client: %v", err)
		return err
	}

	_, err = talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message})
	return err
}
