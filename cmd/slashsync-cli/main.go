// cmd/slashsync-cli/main.go
//
// Offline diff: compares a file of desired command definitions against a JSON
// snapshot of remote commands and prints what a sync would do, without
// touching the network. Both files hold JSON arrays of command definitions;
// type fields may be tag names or wire codes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/PantheraRed/slashsync/internal/command"
	"github.com/PantheraRed/slashsync/pkg/util"
)

func main() {
	localPath := flag.String("local", "commands.json", "desired command definitions")
	remotePath := flag.String("remote", "", "snapshot of remote commands (empty = none)")
	ordered := flag.Bool("ordered", false, "treat option and choice order as significant")
	flag.Parse()

	desired, err := loadDefinitions(*localPath)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	var remote []*command.RawCommand
	if *remotePath != "" {
		remote, err = loadDefinitions(*remotePath)
		if err != nil {
			log.Fatal("[ERR] ", err)
		}
	}

	if err := diff(desired, remote, *ordered); err != nil {
		log.Fatal("[ERR] ", err)
	}
}

func loadDefinitions(path string) ([]*command.RawCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var defs []*command.RawCommand
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return defs, nil
}

func diff(desired, remote []*command.RawCommand, ordered bool) error {
	remoteByName := make(map[string]*command.Command, len(remote))
	for _, raw := range remote {
		c, err := command.New(raw, true)
		if err != nil {
			return fmt.Errorf("remote command %q: %w", raw.Name, err)
		}
		remoteByName[c.Name] = c
	}

	seen := make(map[string]bool, len(desired))
	for _, def := range desired {
		seen[def.Name] = true
		existing, ok := remoteByName[def.Name]
		if !ok {
			fmt.Printf("create  %s\n", def.Name)
			continue
		}
		eq, err := existing.Equals(def, ordered)
		if err != nil {
			return fmt.Errorf("command %q: %w", def.Name, err)
		}
		if eq {
			fmt.Printf("ok      %s%s\n", def.Name, registeredAt(existing))
		} else {
			fmt.Printf("edit    %s%s\n", def.Name, registeredAt(existing))
		}
	}

	for name := range remoteByName {
		if !seen[name] {
			fmt.Printf("delete  %s\n", name)
		}
	}
	return nil
}

func registeredAt(c *command.Command) string {
	ts, err := c.CreatedAt()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("  (registered %s)", util.FormatDate(ts.UTC(), "YYYY-MM-DD hh:mm"))
}
