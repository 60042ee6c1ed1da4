package receitanet

import (
	"context"
	"fmt"

	"github.com/nexconsult/receitanet-bx/internal/desktop"
)

// switchToSearch opens the search tab of the main window.
func (c *Client) switchToSearch(ctx context.Context) error {
	running, err := c.window.Running(ctx, c.settings.ProcessName)
	if err != nil {
		return err
	}
	if !running {
		return ErrAppNotRunning
	}
	at, found, err := desktop.WaitFor(ctx, c.screen, imgIconPesquisa, confStrict, c.t.SearchResultTimeout, c.t.PollInterval)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", imgIconPesquisa, desktop.ErrNotFound)
	}
	if err := c.screen.Click(ctx, at); err != nil {
		return err
	}
	return c.screen.DoubleClick(ctx, at)
}

// selectOption sets a combobox. When the "select..." placeholder shows, the
// box is opened and target picked. Otherwise the box already holds a value:
// validation visible means it is the wanted one, and previous visible means
// the box holds the option listed before target and is switched.
func (c *Client) selectOption(ctx context.Context, placeholders, target, validation, previous string) error {
	at, _, found, err := desktop.LocateAny(ctx, c.screen, c.lists.List(placeholders), confDefault)
	if err != nil {
		return err
	}
	if found {
		if err := c.screen.Click(ctx, at); err != nil {
			return err
		}
		return c.click(ctx, target, confDefault)
	}

	if _, ok, err := c.visible(ctx, validation, confDefault); err != nil || ok {
		return err
	}
	if previous != "" {
		at, ok, err := c.visible(ctx, previous, confDefault)
		if err != nil {
			return err
		}
		if ok {
			if err := c.screen.Click(ctx, at); err != nil {
				return err
			}
			return c.click(ctx, target, confDefault)
		}
	}
	return fmt.Errorf("%s: %w", target, ErrOptionNotFound)
}

// SelectSystem opens the search tab and picks the SPED system of p.
func (c *Client) SelectSystem(ctx context.Context, p Profile) error {
	c.log.WithField("system", p.System).Info("Selecting system")
	if err := c.switchToSearch(ctx); err != nil {
		return fmt.Errorf("selecting system: %w", err)
	}
	if err := c.selectOption(ctx, listSelecioneSistema, p.SystemImage, p.SystemImage, p.PreviousSystemImage); err != nil {
		return fmt.Errorf("selecting system: %w", err)
	}
	return nil
}

// SelectFileType picks the file type of p.
func (c *Client) SelectFileType(ctx context.Context, p Profile) error {
	c.log.WithField("file_type", p.FileTypeImage).Info("Selecting file type")
	if err := c.selectOption(ctx, listSelecioneArquivo, p.FileTypeImage, p.FileTypeValidation, ""); err != nil {
		return fmt.Errorf("selecting file type: %w", err)
	}
	return nil
}

// SelectPeriod picks the period kind of p.
func (c *Client) SelectPeriod(ctx context.Context, p Profile) error {
	c.log.WithField("period", p.PeriodImage).Info("Selecting period")
	if err := c.selectOption(ctx, listSelecionePeriodo, p.PeriodImage, p.PeriodImage, p.PreviousPeriodImage); err != nil {
		return fmt.Errorf("selecting period: %w", err)
	}
	return nil
}

// fillField double-clicks the field id and types text into it.
func (c *Client) fillField(ctx context.Context, id, text string, pause bool) error {
	at, ok, err := c.visible(ctx, id, confDefault)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrFieldNotFound)
	}
	if err := c.screen.DoubleClick(ctx, at); err != nil {
		return err
	}
	if pause {
		if err := desktop.Sleep(ctx, c.t.FieldFocusDelay); err != nil {
			return err
		}
	}
	return c.screen.Type(ctx, text)
}

// InputDates fills the start and end dates of the search form and submits it.
func (c *Client) InputDates(ctx context.Context, start, end string) error {
	c.log.WithFields(map[string]interface{}{"start": start, "end": end}).Info("Filling dates")
	if err := c.fillField(ctx, imgInputDataInicio, start, true); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	if err := c.screen.Press(ctx, desktop.KeyTab); err != nil {
		return err
	}
	if err := c.fillField(ctx, imgInputDataFim, end, true); err != nil {
		return fmt.Errorf("end date: %w", err)
	}
	return c.screen.Press(ctx, desktop.KeyEnter)
}

// InputFiscalFields fills the SPED Fiscal search: all establishments, the
// date range and, when offered, only the last transmitted file.
func (c *Client) InputFiscalFields(ctx context.Context, start, end string) error {
	c.log.Info("Filling fiscal search fields")
	at, ok, err := c.visible(ctx, imgBoxBuscarTodos, confFiscalBox)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", imgBoxBuscarTodos, ErrFieldNotFound)
	}
	if err := c.screen.Click(ctx, at); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := c.screen.Press(ctx, desktop.KeyTab); err != nil {
			return err
		}
	}

	if err := c.fillField(ctx, imgInputDataInicioFiscal, start, false); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	if err := c.screen.Press(ctx, desktop.KeyTab); err != nil {
		return err
	}
	if err := c.fillField(ctx, imgInputDataFimFiscal, end, false); err != nil {
		return fmt.Errorf("end date: %w", err)
	}

	at, ok, err = c.visible(ctx, imgBoxUltimoArquivo, confDefault)
	if err != nil {
		return err
	}
	if !ok {
		c.log.Warn("Last transmitted file box not found")
		return nil
	}
	if err := c.screen.Click(ctx, at); err != nil {
		return err
	}
	return c.click(ctx, imgButtonPesquisar, confDefault)
}
