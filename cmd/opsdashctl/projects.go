package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/dukerupert/opsdash/internal/store"
)

var Projects = cli.Command{
	Name:   "projects",
	Usage:  "Lists the projects events can be imported into",
	Action: listProjects,
}

func listProjects(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	projects, err := store.NewProjectStore(e.db).List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCLIENT")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.Client)
	}
	return tw.Flush()
}
