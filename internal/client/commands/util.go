package commands

import (
	"fmt"
	"net/url"

	"chessgrid/internal/client/display"
)

func (r *Registry) registerUtilCommands() {
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     r.healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set the API base URL",
		Usage:       "url [base-url]",
		Handler:     r.urlHandler,
	})
}

func (r *Registry) healthHandler(args []string) error {
	resp, err := r.session.Client.Health()
	if err != nil {
		return err
	}

	storageColor := display.Green
	if resp.Storage == "degraded" {
		storageColor = display.Red
	}
	fmt.Fprintf(r.out, "Server: %s%s%s | Storage: %s%s%s\n",
		display.Green, resp.Status, display.Reset, storageColor, resp.Storage, display.Reset)
	return nil
}

func (r *Registry) urlHandler(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "API: %s\n", r.session.APIBaseURL)
		return nil
	}

	u, err := url.Parse(args[0])
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL: %s", args[0])
	}
	r.session.SetBaseURL(args[0])
	fmt.Fprintf(r.out, "%sAPI set to: %s%s\n", display.Green, r.session.APIBaseURL, display.Reset)
	return nil
}
