package main

import (
	"encoding/json"
	"fmt"

	"github.com/voidshard/gofer/pkg/api/http/client"
	"github.com/voidshard/gofer/pkg/structs"
)

const (
	docStart  = `Start a script as a background job`
	docList   = `List jobs`
	docGet    = `Get a single job`
	docCancel = `Cancel a running job`
	docDelete = `Delete a job that is not running`
	docDeps   = `Show a job's dependencies`
	docOutput = `Print a job's captured output`
	docClear  = `Remove all finished jobs`
)

type optsStart struct {
	optsClient

	Name      string  `long:"name" description:"Human readable job name"`
	DependsOn []int64 `long:"depends-on" description:"Job ID this job waits on (repeatable)"`

	Pipeline         string `long:"pipeline" description:"Pipeline label"`
	PipelinePosition int    `long:"pipeline-position" description:"Position within the pipeline"`
	PipelineTotal    int    `long:"pipeline-total" description:"Total jobs in the pipeline"`

	Args struct {
		Script string `positional-arg-name:"script" description:"Absolute path of the script to run"`
	} `positional-args:"yes" required:"yes"`
}

func (c *optsStart) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	job, err := cli.StartJob(&structs.StartJobRequest{JobSpec: structs.JobSpec{
		Script:           c.Args.Script,
		Name:             c.Name,
		DependsOn:        c.DependsOn,
		PipelineName:     c.Pipeline,
		PipelinePosition: c.PipelinePosition,
		PipelineTotal:    c.PipelineTotal,
	}})
	if err != nil {
		return err
	}
	return printJson(job)
}

type optsList struct {
	optsClient

	IDs      []int64  `long:"id" description:"Filter by job ID (repeatable)"`
	Statuses []string `long:"status" description:"Filter by status (repeatable)"`
	Limit    int      `long:"limit" description:"Max jobs to return"`
	Offset   int      `long:"offset" description:"Jobs to skip"`
}

func (c *optsList) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	q := &structs.Query{JobIDs: c.IDs, Limit: c.Limit, Offset: c.Offset}
	for _, s := range c.Statuses {
		st := structs.ToStatus(s)
		if st == "" {
			return fmt.Errorf("unknown status %q", s)
		}
		q.Statuses = append(q.Statuses, st)
	}
	jobs, err := cli.Jobs(q)
	if err != nil {
		return err
	}
	return printJson(jobs)
}

type optsGet struct {
	optsClient
	idArgs
}

func (c *optsGet) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	job, err := cli.Job(c.Args.ID)
	if err != nil {
		return err
	}
	return printJson(job)
}

type optsCancel struct {
	optsClient
	idArgs
}

func (c *optsCancel) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	return cli.CancelJob(c.Args.ID)
}

type optsDelete struct {
	optsClient
	idArgs
}

func (c *optsDelete) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	return cli.DeleteJob(c.Args.ID)
}

type optsDeps struct {
	optsClient
	idArgs
}

func (c *optsDeps) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	deps, err := cli.Dependencies(c.Args.ID)
	if err != nil {
		return err
	}
	return printJson(deps)
}

type optsOutput struct {
	optsClient
	idArgs
}

func (c *optsOutput) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	out, err := cli.Output(c.Args.ID)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

type optsClear struct {
	optsClient
}

func (c *optsClear) Execute(args []string) error {
	cli, err := client.New(c.Addr, c.CACert)
	if err != nil {
		return err
	}
	count, err := cli.ClearFinished()
	if err != nil {
		return err
	}
	fmt.Println("removed", count, "finished jobs")
	return nil
}

type idArgs struct {
	Args struct {
		ID int64 `positional-arg-name:"id" description:"Job ID"`
	} `positional-args:"yes" required:"yes"`
}

func printJson(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
