// Command go-midi2 is a small RTP-MIDI network session demo: it advertises itself over Bonjour,
// logs each received RTP-MIDI message at debug level, and logs the note-on/note-off Universal
// MIDI Packets it transcodes them to.
package main

import (
	"fmt"
	"os"

	"github.com/laenzlinger/go-midi2/cmd/go-midi2/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := cmd.NewCommand(version, commit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
