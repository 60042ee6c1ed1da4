package receitanet

import (
	"fmt"
	"path/filepath"

	"github.com/nexconsult/receitanet-bx/internal/desktop"
)

// Single images matched on the Receitanet BX window.
const (
	imgAtualizarLista          = "atualizar-lista"
	imgBoxBuscarTodos          = "box-buscar-todos"
	imgBoxUltimoArquivo        = "box-ultimo-arquivo"
	imgButtonCriteriosAcima    = "button-criterios-acima"
	imgButtonPesquisar         = "button-pesquisar"
	imgButtonSolicitarMarcados = "button-solicitar-arquivos-marcados"
	imgComboboxPerfil          = "combobox-perfil"
	imgFimDownload             = "fim-download"
	imgIconAcompanhamento      = "icon-acompanhamento"
	imgIconPesquisa            = "icon-pesquisa"
	imgInputDataFim            = "input-data-fim"
	imgInputDataFimFiscal      = "input-data-fim-fiscal"
	imgInputDataInicio         = "input-data-inicio"
	imgInputDataInicioFiscal   = "input-data-inicio-fiscal"
	imgInputPJ                 = "input-pj"
	imgLoginEfetuado           = "login-efetuado"
	imgMsgAguardando           = "msg-aguardando"
	imgProcuradorPF            = "procurador-pf"
	imgProcuradorPJ            = "procurador-pj"
	imgResultadoPesquisa       = "resultado-pesquisa"
	imgSelecionarProcurador    = "selecionar-procurador"
)

// Lists of interchangeable images, any one of which may be on screen.
const (
	listCertificado      = "icon-certificado-alz"
	listEntrar           = "button-entrar"
	listSelecionarTodos  = "selecionar-todos"
	listSelecioneSistema = "selecione-sistema"
	listSelecioneArquivo = "selecione-arquivo"
	listSelecionePeriodo = "selecione-periodo"
	listBaixar           = "button-baixar"
	listMarcar           = "icon-marcar"
	listSeletorBox       = "seletor-box"
)

// imageManifest maps image ids to files under the image root.
var imageManifest = map[string]string{
	imgAtualizarLista:                        "login/atualizar-lista.png",
	imgBoxBuscarTodos:                        "sped-fiscal/box-buscar-todos.png",
	imgBoxUltimoArquivo:                      "sped-fiscal/box-ultimo-arquivo.png",
	imgButtonCriteriosAcima:                  "baixa/button-criterios-acima.png",
	imgButtonPesquisar:                       "baixa/button-pesquisar.png",
	imgButtonSolicitarMarcados:               "baixa/button-solicitar-arquivos-marcados.png",
	"combobox-dados-agregados":               "combobox-arquivos/dados-agregados-escrituracao.png",
	"combobox-entrega":                       "combobox-periodos/periodo-de-entrega.png",
	"combobox-entrega-da-incorporada":        "combobox-periodos/periodo-de-entrega-da-incorporada.png",
	"combobox-escrituracao":                  "combobox-arquivos/escrituracao.png",
	"combobox-escrituracao-contabil-digital": "combobox-arquivos/escrituracao-contabil-digital.png",
	"combobox-escrituracao-da-incorporada":   "combobox-periodos/periodo-de-escrituracao-da-incorporada.png",
	"combobox-escrituracao-fiscal":           "combobox-arquivos/escrituracao-fiscal.png",
	imgComboboxPerfil:                        "login/combobox-contribuinte.png",
	"combobox-periodo-escrituracao":          "combobox-periodos/periodo-escrituracao.png",
	"combobox-periodo-entrega":               "combobox-periodos/periodo-de-entrega.png",
	"combobox-sped-contabil":                 "combobox-sistemas/contabil.png",
	"combobox-sped-contribuicoes":            "combobox-sistemas/contribuicoes.png",
	"combobox-sped-ecf":                      "combobox-sistemas/ecf.png",
	"combobox-sped-fiscal":                   "combobox-sistemas/fiscal.png",
	"combobox-termos-junta-comercial":        "combobox-arquivos/termos-junta-comercial.png",
	"combobox-validacao-escrituracao":        "combobox-arquivos/validacao-escrituracao.png",
	imgFimDownload:                           "baixa/fim-download.png",
	imgIconAcompanhamento:                    "baixa/icon-acompanhamento.png",
	"icon-marcar":                            "baixa/icon-marcar.png",
	imgIconPesquisa:                          "baixa/icon-pesquisa.png",
	"input-cnjp":                             "sped-fiscal/input-cnpj.png",
	imgInputDataFim:                          "baixa/data-fim.png",
	imgInputDataFimFiscal:                    "sped-fiscal/input-data-fim.png",
	"input-data-fim-incorporada":             "baixa/data-fim-incorporada.png",
	imgInputDataInicio:                       "baixa/data-inicio.png",
	imgInputDataInicioFiscal:                 "sped-fiscal/input-data-inicio.png",
	"input-data-inicio-incorporada":          "baixa/data-inicio-incorporada.png",
	"input-pf":                               "login/input-cpf.png",
	imgInputPJ:                               "login/input-cnpj.png",
	"input-procurador":                       "baixa/cnpj-incorporada.png",
	imgLoginEfetuado:                         "login/validate-login.png",
	imgMsgAguardando:                         "baixa/msg-aguardando.png",
	"msg-erro-data":                          "baixa/msg-erro-data.png",
	"msg-falha-comunicacao":                  "baixa/msg-falha-comunicacao-servidor.png",
	"msg-nao-existe-procuracao":              "baixa/msg-nao-existe-procuracao.png",
	"msg-procuracao-vencida":                 "baixa/msg-procuracao-vencida.png",
	"pop-up-error":                           "pop-ups/erro.png",
	"pop-up-nao-encontrado":                  "pop-ups/nao-encontrado.png",
	"pop-up-pedido":                          "pop-ups/pedido.png",
	"popup-nenhum-arquivo":                   "pop-ups/nenhum-arquivo.png",
	imgProcuradorPF:                          "login/procurador-pf.png",
	imgProcuradorPJ:                          "login/procurador-pj.png",
	imgResultadoPesquisa:                     "baixa/resultado-pesquisa.png",
	imgSelecionarProcurador:                  "login/combobox-procurador.png",
	"validacao-periodo-contabil":             "combobox-periodos/validacao-periodo-contabil.png",
	"validacao-periodo-fiscal":               "combobox-periodos/validacao-periodo-fiscal.png",
	"verificar-pedidos":                      "baixa/verificar-pedidos.png",
}

// listDirs maps list names to folders under the image root.
var listDirs = map[string]string{
	listCertificado:      "icon-certificado-alz",
	listEntrar:           "button-entrar",
	listSelecionarTodos:  "selecionar-todos",
	listSelecioneSistema: "combobox-sistemas/selecione sistema",
	listSelecioneArquivo: "combobox-arquivos/selecione arquivo",
	listSelecionePeriodo: "combobox-periodos/selecione periodo",
	listBaixar:           "baixa/button-baixar",
	listMarcar:           "baixa/icon-marcar",
	listSeletorBox:       "seletor-box",
}

// LoadImages registers every image and list the bot uses from root.
func LoadImages(t *desktop.Templates, root string) error {
	for id, rel := range imageManifest {
		if err := t.Add(id, filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("loading images: %w", err)
		}
	}
	for name, rel := range listDirs {
		if _, err := t.AddList(name, filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("loading images: %w", err)
		}
	}
	return nil
}
