package utils

import (
	"fmt"
	"log"

	"github.com/ttacon/chalk"
)

// Check panics with msg if err is non-nil. Reserved for process-fatal
// startup conditions (bad config, failed listener bind); never called from
// inside the tick loop.
func Check(err error, msg string) {
	if err != nil {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panicln(err)
	}
}

// Assert panics with msg if ok is false. Same fatal-only scope as Check.
func Assert(ok bool, msg string) {
	if !ok {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panic()
	}
}
