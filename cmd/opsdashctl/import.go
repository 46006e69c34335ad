package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/importer"
	"github.com/dukerupert/opsdash/internal/store"
)

var Import = cli.Command{
	Name:  "import",
	Usage: "Creates meetings and tasks from a calendar file",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "file",
			Usage: "Calendar file to read",
		},
		cli.Int64Flag{
			Name:  "project",
			Usage: "Project every imported event is assigned to",
		},
		cli.BoolFlag{
			Name:  "strict",
			Usage: "Require a well-formed RFC 5545 document",
		},
		cli.StringFlag{
			Name:  "skip",
			Usage: "Comma separated event indexes to leave out",
		},
		cli.StringFlag{
			Name:  "as-task",
			Usage: "Comma separated event indexes to import as tasks",
		},
		cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the assignments without persisting them",
		},
	},
	Action: importCalendar,
}

func importCalendar(c *cli.Context) error {
	path := c.String("file")
	if path == "" {
		return errors.New("--file is required")
	}
	projectID := c.Int64("project")
	if projectID == 0 {
		return errors.New("--project is required")
	}
	skip, err := parseIndexList(c.String("skip"))
	if err != nil {
		return fmt.Errorf("--skip: %w", err)
	}
	asTask, err := parseIndexList(c.String("as-task"))
	if err != nil {
		return fmt.Errorf("--as-task: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var events []ics.ParsedEvent
	if c.Bool("strict") {
		if events, err = ics.DecodeStrict(bytes.NewReader(data)); err != nil {
			return err
		}
	} else {
		events = ics.Decode(string(data))
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	projects, err := store.NewProjectStore(e.db).List()
	if err != nil {
		return err
	}

	sess := &importer.Session{Assignments: importer.NewAssignments(events), Projects: projects}
	if err := applyFlags(sess, projectID, skip, asTask); err != nil {
		return err
	}

	if c.Bool("dry-run") {
		for i, a := range sess.Assignments {
			fmt.Printf("%3d  %-7s  skip=%-5t  %s\n", i, a.Kind, a.Skip, a.Event.Summary)
		}
		return nil
	}

	creator := store.NewImportCreator(store.NewMeetingStore(e.db), store.NewTaskStore(e.db))
	res, err := importer.NewReconciler(creator, e.logger).Commit(sess.Assignments)
	if err != nil {
		return fmt.Errorf("committed %d of %d: %w", res.Committed, res.Eligible, err)
	}
	fmt.Printf("imported %d of %d events\n", res.Committed, len(events))
	return nil
}

// applyFlags assigns every entry to projectID, then applies the kind and
// skip overrides.
func applyFlags(sess *importer.Session, projectID int64, skip, asTask []int) error {
	for i := range sess.Assignments {
		if err := sess.SetProject(i, &projectID); err != nil {
			return err
		}
	}
	for _, i := range asTask {
		if err := sess.SetKind(i, importer.KindTask); err != nil {
			return err
		}
	}
	for _, i := range skip {
		if err := sess.SetSkip(i, true); err != nil {
			return err
		}
	}
	return nil
}

func parseIndexList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}
