package main

import (
	"github.com/karlmutch/errors"
)

// This file implements a monitor that drains the errors the clock reports
// while running and logs them, none of them stop the clock

func runMonitoring(errorC <-chan errors.Error, quitC <-chan struct{}) {
	for {
		select {
		case err := <-errorC:
			if err != nil {
				logger.Warn(err.Error())
			}
		case <-quitC:
			return
		}
	}
}
