package receitanet

import (
	"context"
	"fmt"

	"github.com/nexconsult/receitanet-bx/internal/desktop"
	"github.com/nexconsult/receitanet-bx/internal/popup"
)

// ValidateRequest is called right after a request is submitted. It waits for
// the "please wait" message to go away, then races the submission dialogs and
// returns the one that showed up.
func (c *Client) ValidateRequest(ctx context.Context) (popup.Outcome, error) {
	if err := desktop.WaitGone(ctx, c.screen, imgMsgAguardando, confDefault, c.t.PollInterval); err != nil {
		return popup.Outcome{}, fmt.Errorf("waiting for the request to be processed: %w", err)
	}
	outcome, err := c.resolver.Resolve(ctx, c.catalog)
	if err != nil {
		return popup.Outcome{}, fmt.Errorf("validating request: %w", err)
	}
	return outcome, nil
}

// DownloadFiles opens the follow-up tab, marks the request with all of its
// files and downloads them, waiting for the end-of-download message.
func (c *Client) DownloadFiles(ctx context.Context) error {
	c.log.Info("Downloading files")
	attempts := c.t.DownloadAttempts

	if err := c.click(ctx, imgIconAcompanhamento, confStrict); err != nil {
		return fmt.Errorf("downloading files: %w", err)
	}
	steps := []struct {
		list       string
		confidence float64
	}{
		{listMarcar, confLoose},
		{listSelecionarTodos, confStrict},
		{listMarcar, confLoose},
		{listBaixar, confLoose},
	}
	for _, s := range steps {
		if err := c.clickAny(ctx, s.list, s.confidence, attempts); err != nil {
			return fmt.Errorf("downloading files: %w", err)
		}
	}

	_, done, err := desktop.WaitFor(ctx, c.screen, imgFimDownload, confStrict, c.t.DownloadTimeout, c.t.PollInterval)
	if err != nil {
		return fmt.Errorf("downloading files: %w", err)
	}
	if !done {
		return ErrDownloadTimeout
	}
	c.log.Info("Download finished")
	return nil
}
