package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nexconsult/receitanet-bx/internal/utils"
)

// Sistemas SPED disponíveis no Receitanet BX
const (
	SystemContribuicoes = "SPED Contribuições"
	SystemContabil      = "SPED Contábil"
	SystemECF           = "SPED ECF"
	SystemFiscal        = "SPED Fiscal"
)

var (
	ErrInvalidCNPJ   = errors.New("invalid CNPJ")
	ErrMissingSystem = errors.New("system is required")
)

// DownloadRequest representa a mensagem recebida para baixar arquivos SPED
// @Description Pedido de download de arquivos SPED pelo Receitanet BX
type DownloadRequest struct {
	// CNPJ do contribuinte, com ou sem formatação
	CNPJ string `json:"cnpj" example:"44.616.568/0001-07"`

	// Sistema SPED (SPED Contribuições, SPED Contábil, SPED ECF, SPED Fiscal)
	System string `json:"sistema" example:"SPED Contribuições"`

	// Data inicial (dd/mm/yyyy, dd-mm-yyyy, yyyy-mm-dd ou yyyy/mm/dd)
	StartDate string `json:"datainicial" example:"01/01/2018"`

	// Data final, mesmos formatos da data inicial
	EndDate string `json:"datafinal" example:"31/12/2018"`
}

// Normalize limpa o CNPJ e converte as datas para dd/mm/yyyy
func (r *DownloadRequest) Normalize() error {
	cnpj, ok := utils.NormalizeCNPJ(r.CNPJ)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCNPJ, r.CNPJ)
	}

	start, err := utils.NormalizeDate(r.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	end, err := utils.NormalizeDate(r.EndDate)
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}

	system := strings.TrimSpace(r.System)
	if system == "" {
		return ErrMissingSystem
	}

	r.CNPJ, r.System, r.StartDate, r.EndDate = cnpj, system, start, end
	return nil
}
