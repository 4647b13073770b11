package client

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/voidshard/gofer/pkg/structs"
)

// httpDoer wraps an http.Client so every verb shares TLS config and
// response handling.
type httpDoer struct {
	client *http.Client
}

func newHTTPDoer(tlsCfg *tls.Config) *httpDoer {
	client := &http.Client{}
	if tlsCfg != nil {
		client.Transport = &http.Transport{TLSClientConfig: tlsCfg}
	}
	return &httpDoer{client: client}
}

func (h *httpDoer) get(addr *url.URL, out interface{}) error {
	return h.do(http.MethodGet, addr, nil, out)
}

func (h *httpDoer) post(addr *url.URL, in, out interface{}) error {
	return h.do(http.MethodPost, addr, in, out)
}

func (h *httpDoer) patch(addr *url.URL, in, out interface{}) error {
	return h.do(http.MethodPatch, addr, in, out)
}

func (h *httpDoer) delete(addr *url.URL, in, out interface{}) error {
	return h.do(http.MethodDelete, addr, in, out)
}

// do sends a request with an optional JSON body and unmarshals the
// response. Error status codes are surfaced with the response body as
// the message.
func (h *httpDoer) do(method string, addr *url.URL, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, addr.String(), reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	} else if resp.Body == nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("bad status code: %d", resp.StatusCode)
		}
		return nil
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		return fmt.Errorf("bad status code %d, returned %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}

// setQueryString sets the query string of a URL based on the given query object.
func setQueryString(u *url.URL, q *structs.Query) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()
	values := u.Query()

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.JobIDs != nil {
		ids := []string{}
		for _, id := range q.JobIDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		values["job_ids"] = ids
	}
	if q.Statuses != nil {
		ss := []string{}
		for _, s := range q.Statuses {
			ss = append(ss, string(s))
		}
		values["statuses"] = ss
	}

	u.RawQuery = values.Encode()
}
