package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/gossip"
	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/overlay"
)

// localTransport delivers announcements directly into the same
// in-process node table, since a one-shot CLI invocation has no real
// peer processes to dial.
type localTransport struct {
	tbl *overlay.Table
}

func (t localTransport) Broadcast(senderID int, ann overlay.Announcement) error {
	for i := 0; i < t.tbl.Size(); i++ {
		if i == senderID {
			continue
		}
		if _, err := t.tbl.AcceptAnnouncement(i, ann); err != nil {
			return err
		}
	}
	return nil
}

func (t localTransport) Send(toID int, ann overlay.Announcement) error {
	_, err := t.tbl.AcceptAnnouncement(toID, ann)
	return err
}

func newAnnounceCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "announce <id>",
		Short: "Build, sign, and broadcast a node's parity announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			svc := gossip.NewService(tbl, localTransport{tbl: tbl}, opts.seed)
			if err := svc.Announce(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "node %d announced\n", id)
			return nil
		},
	}
}
