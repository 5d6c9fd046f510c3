package main

import (
	"context"
	"errors"
	"net"

	"eniki/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "storage_unavailable":
			lines = append(lines, "hint: the diary database could not be opened; check ENIKI_DB and file permissions.")
		case "generator_disabled":
			lines = append(lines, "hint: set generator_url (or ENIKI_GENERATOR_URL) to enable generated images.")
		case "upstream_failed":
			lines = append(lines, "hint: the image generator rejected the request; check its logs.")
		case "resource_exhausted":
			lines = append(lines, "hint: retry shortly or reduce concurrent heavy requests (import/generate).")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify ENIKI_API_URL points to an eniki server.")
		}
		if apiErr.Status >= 500 && apiErr.Code != "upstream_failed" {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase ENIKI_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure an eniki server is running at ENIKI_API_URL.",
			"hint: start a local server manually with: eniki srv",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
