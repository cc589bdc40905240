package cmdutils

import (
	"io"
	"os"
	"time"

	"github.com/harness/ar-stats/internal/artifactory"
	"github.com/harness/ar-stats/internal/config"
	"github.com/harness/ar-stats/internal/pipeline"

	"github.com/rs/zerolog/log"
)

// Factory hands commands their collaborators. Tests swap the fields.
type Factory struct {
	// Searcher builds the AQL client for a resolved configuration
	Searcher func(cfg *config.Config) pipeline.Searcher
	// Now is the clock reports are stamped with
	Now func() time.Time
	// In feeds key presses to the spinner
	In io.Reader
	// Out receives command output, ErrOut receives progress and errors
	Out    io.Writer
	ErrOut io.Writer
}

func NewFactory() *Factory {
	return &Factory{
		Searcher: func(cfg *config.Config) pipeline.Searcher {
			client := artifactory.NewClient(artifactory.Options{
				URL:      cfg.ArtifactoryURL,
				Username: cfg.Username,
				Password: cfg.Password,
				Insecure: cfg.Insecure,
				Timeout:  cfg.Timeout,
			})
			if client.Insecure() {
				log.Debug().Str("url", client.SearchURL()).Msg("TLS certificate verification is disabled")
			}
			return client
		},
		Now:    time.Now,
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}
