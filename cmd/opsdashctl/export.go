package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/model"
	"github.com/dukerupert/opsdash/internal/store"
)

var Export = cli.Command{
	Name:  "export",
	Usage: "Writes meetings and open tasks to a calendar file",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "out",
			Usage: "Output file, - for stdout",
			Value: "-",
		},
		cli.Int64Flag{
			Name:  "project",
			Usage: "Only export this project",
		},
	},
	Action: exportCalendar,
}

func exportCalendar(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	meetingStore := store.NewMeetingStore(e.db)
	taskStore := store.NewTaskStore(e.db)

	var (
		meetings []model.Meeting
		tasks    []model.Task
	)
	if pid := c.Int64("project"); pid != 0 {
		if meetings, err = meetingStore.ListByProject(pid); err != nil {
			return err
		}
		if tasks, err = taskStore.ListByProject(pid); err != nil {
			return err
		}
	} else {
		if meetings, err = meetingStore.List(); err != nil {
			return err
		}
		if tasks, err = taskStore.List(); err != nil {
			return err
		}
	}

	enc := ics.NewEncoder(e.cfg.Calendar.Domain, e.cfg.Calendar.Product, e.cfg.Calendar.Locale)
	events := enc.Events(meetings, tasks)
	doc := enc.Render(events)

	out := c.String("out")
	if out == "-" {
		_, err = os.Stdout.WriteString(doc)
		return err
	}
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	e.logger.Info("calendar exported", "file", out, "events", len(events))
	return nil
}
