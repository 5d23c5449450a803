package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"japjap-server/pkg/db"
)

func main() {
	wait := pflag.DurationP("wait", "w", 10*time.Second, "how long to wait for the database to come up")
	pflag.Parse()

	if err := waitForDB(*wait); err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not migrate the database")
	}

	logrus.Info("database is up to date")
}

// waitForDB polls until Postgres answers or wait has elapsed
func waitForDB(wait time.Duration) error {
	deadline := time.Now().Add(wait)
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	for {
		err := db.Available()
		if err == nil || time.Now().After(deadline) {
			return err
		}

		logrus.WithError(err).Debug("waiting for the database")
		<-tick.C
	}
}
