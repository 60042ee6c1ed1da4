package receitanet

import (
	"context"
	"fmt"

	"github.com/nexconsult/receitanet-bx/internal/desktop"
)

// Login opens the application and signs in with the A1 certificate as
// attorney of cnpj. The whole sequence is retried with a fresh application.
func (c *Client) Login(ctx context.Context, cnpj string) error {
	c.log.Info("Starting certificate login")

	for attempt := 1; attempt <= c.settings.LoginAttempts; attempt++ {
		ok, err := c.loginOnce(ctx, cnpj)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil && ok {
			c.log.Info("Login successful")
			return nil
		}

		entry := c.log.WithField("attempt", attempt)
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("Login attempt failed")

		c.closeQuietly(ctx)
		if err := desktop.Sleep(ctx, c.t.RelaunchDelay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrLoginFailed, c.settings.LoginAttempts)
}

func (c *Client) loginOnce(ctx context.Context, cnpj string) (bool, error) {
	if err := c.Open(ctx); err != nil {
		return false, err
	}

	c.log.Debug("Selecting the A1 certificate")
	if err := c.clickAny(ctx, listCertificado, confLoose, c.t.ClickAttempts); err != nil {
		return false, err
	}
	steps := []string{
		imgComboboxPerfil,
		imgSelecionarProcurador,
		imgProcuradorPF,
		imgProcuradorPJ,
		imgInputPJ,
	}
	for _, id := range steps {
		c.log.WithField("step", id).Debug("Login step")
		if err := c.click(ctx, id, confDefault); err != nil {
			return false, err
		}
	}

	c.log.Debug("Typing the taxpayer CNPJ")
	if err := c.screen.Press(ctx, "a", "ctrl"); err != nil {
		return false, err
	}
	if err := c.screen.Paste(ctx, cnpj); err != nil {
		return false, err
	}
	if err := c.screen.Press(ctx, desktop.KeyTab); err != nil {
		return false, err
	}
	if err := desktop.Sleep(ctx, c.t.LoginTypingPause); err != nil {
		return false, err
	}

	if err := c.clickAny(ctx, listEntrar, confLoose, c.t.ClickAttempts); err != nil {
		return false, err
	}
	if err := desktop.Sleep(ctx, c.t.LoginVerifyDelay); err != nil {
		return false, err
	}

	_, ok, err := c.visible(ctx, imgLoginEfetuado, confLoose)
	if err != nil || !ok {
		return false, err
	}
	if err := c.window.Maximize(ctx); err != nil {
		return false, err
	}
	return true, desktop.Sleep(ctx, c.t.LoginSettleDelay)
}
