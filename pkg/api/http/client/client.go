package client

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/voidshard/gofer/internal/utils"
	"github.com/voidshard/gofer/pkg/api/http/common"
	"github.com/voidshard/gofer/pkg/structs"
)

// Client speaks to a gofer HTTP server, mirroring the service API.
type Client struct {
	url  *url.URL
	http *httpDoer
}

// New returns a Client for the given server address. An optional CA
// cert path may be given for servers running HTTPS with a private CA.
func New(address string, caCert string) (*Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}
	tlsCfg, err := utils.TLSConfig(caCert, "", "")
	if err != nil {
		return nil, err
	}
	return &Client{url: u, http: newHTTPDoer(tlsCfg)}, nil
}

func (c *Client) StartJob(req *structs.StartJobRequest) (*structs.Job, error) {
	addr := c.addr(common.API_JOBS)
	var out structs.Job
	return &out, c.http.post(addr, req, &out)
}

func (c *Client) CancelJob(id int64) error {
	addr := c.addr(route(common.API_CANCEL, id))
	var out common.UpdateResponse
	return c.http.patch(addr, nil, &out)
}

func (c *Client) Job(id int64) (*structs.Job, error) {
	addr := c.addr(route(common.API_JOB, id))
	var out structs.Job
	return &out, c.http.get(addr, &out)
}

func (c *Client) Jobs(q *structs.Query) ([]*structs.Job, error) {
	addr := c.addr(common.API_JOBS)
	setQueryString(addr, q)
	var out []*structs.Job
	return out, c.http.get(addr, &out)
}

func (c *Client) ReadyJobs() ([]*structs.Job, error) {
	addr := c.addr(common.API_READY)
	var out []*structs.Job
	return out, c.http.get(addr, &out)
}

func (c *Client) Output(id int64) (string, error) {
	addr := c.addr(route(common.API_OUTPUT, id))
	var out common.OutputResponse
	return out.Output, c.http.get(addr, &out)
}

func (c *Client) AddDependency(jobID, dependsOn int64) error {
	addr := c.addr(common.API_DEPS)
	var out common.UpdateResponse
	return c.http.post(addr, &structs.DependencyRequest{JobID: jobID, DependsOn: dependsOn}, &out)
}

func (c *Client) RemoveDependency(jobID, dependsOn int64) error {
	addr := c.addr(common.API_DEPS)
	var out common.UpdateResponse
	return c.http.delete(addr, &structs.DependencyRequest{JobID: jobID, DependsOn: dependsOn}, &out)
}

func (c *Client) Dependencies(jobID int64) (*structs.JobDependencies, error) {
	addr := c.addr(route(common.API_JOB_DEPS, jobID))
	var out structs.JobDependencies
	return &out, c.http.get(addr, &out)
}

func (c *Client) DeleteJob(id int64) error {
	addr := c.addr(route(common.API_JOB, id))
	var out common.UpdateResponse
	return c.http.delete(addr, nil, &out)
}

func (c *Client) ClearFinished() (int64, error) {
	addr := c.addr(common.API_FINISHED)
	var out common.UpdateResponse
	return out.Updated, c.http.delete(addr, nil, &out)
}

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}

// route fills the {id} var of a mux route pattern.
func route(pattern string, id int64) string {
	return strings.Replace(pattern, "{id}", strconv.FormatInt(id, 10), 1)
}
