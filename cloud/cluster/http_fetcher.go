package cluster

import (
	"bufio"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// httpFetcher reads the worker set from a membership service: an http
// endpoint returning one 'host:port' per line. Blank lines and '#' comments
// are skipped.
type httpFetcher struct {
	url    string
	client *http.Client
}

func NewHTTPFetcher(url string) Fetcher {
	return &httpFetcher{url: url, client: http.DefaultClient}
}

func (f *httpFetcher) Fetch() ([]Node, error) {
	resp, err := f.client.Get(f.url)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching cluster membership")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("membership service returned status %d", resp.StatusCode)
	}

	var nodes []Node
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		nodes = append(nodes, NewIdNode(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading membership response")
	}
	return nodes, nil
}
