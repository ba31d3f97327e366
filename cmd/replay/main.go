package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"limitbook/replay"
)

// Replay harness: feeds recorded order-event scripts to fresh books and
// logs the resulting trades and final depth.
func main() {
	path := flag.String("file", "", "YAML script file to replay")
	verbose := flag.Bool("v", false, "log every trade")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *path == "" {
		log.Fatal("usage: replay -file events.yaml")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.WithError(err).Fatal("open script")
	}
	defer f.Close()

	scripts, err := replay.Load(f)
	if err != nil {
		log.WithError(err).Fatal("load script")
	}

	for _, script := range scripts {
		runLog := log.WithField("script", script.Name)

		book, trades, err := script.RunScript()
		if err != nil {
			runLog.WithError(err).Fatal("replay failed")
		}

		for _, trade := range trades {
			runLog.WithFields(logrus.Fields{
				"bid":      trade.Bid.OrderID,
				"ask":      trade.Ask.OrderID,
				"price":    trade.Bid.Price,
				"quantity": trade.Bid.Quantity,
			}).Debug("trade")
		}

		bids, asks := book.GetLevels()
		runLog.WithFields(logrus.Fields{
			"events":     len(script.Events),
			"trades":     len(trades),
			"resting":    book.Size(),
			"bid_levels": len(bids),
			"ask_levels": len(asks),
		}).Info("replay complete")
	}
}
