// Package viewer hands result documents to the browser-based page
// viewer. It builds the /highlight deep link for a hit and launches
// the platform opener (or a configured command) on it.
package viewer

import (
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/errors"
)

// HighlightURL builds the viewer deep link for one document. The bbox
// travels as its original JSON text and every parameter is
// percent-encoded, so filenames with spaces or unicode survive intact.
func HighlightURL(baseURL string, doc api.Document) string {
	q := url.Values{}
	q.Set("file", doc.File)
	q.Set("page", strconv.Itoa(doc.Page))
	if len(doc.BBox) > 0 {
		q.Set("bbox", string(doc.BBox))
	}
	if doc.Text != "" {
		q.Set("text", doc.Text)
	}
	return strings.TrimSuffix(baseURL, "/") + "/highlight?" + q.Encode()
}

// runner executes the opener command. Swapped out in tests.
type runner func(name string, args ...string) error

func run(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener launches URLs in the user's browser.
type Opener struct {
	command string
	run     runner
}

// NewOpener returns an Opener. A non-empty command overrides the
// platform default (open, xdg-open, or rundll32).
func NewOpener(command string) *Opener {
	return &Opener{command: command, run: run}
}

// Open launches the URL. The viewer process is started, not waited on.
func (o *Opener) Open(rawURL string) error {
	name, args := o.openerCommand()
	args = append(args, rawURL)

	slog.Debug("opening viewer", "command", name, "url", rawURL)
	if err := o.run(name, args...); err != nil {
		return errors.New(errors.ErrCodeInternal, "failed to launch viewer", err).
			WithDetail("command", name).
			WithSuggestion("Set viewer.command in the config to a browser on your PATH")
	}
	return nil
}

func (o *Opener) openerCommand() (string, []string) {
	if o.command != "" {
		parts := strings.Fields(o.command)
		return parts[0], parts[1:]
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
