package models

import "time"

// StandardResponse representa a estrutura padrão unificada para todas as respostas da API
// @Description Estrutura padrão unificada de resposta para todos os endpoints
type StandardResponse struct {
	// Status da operação (success, error, warning)
	// @example "success"
	Status string `json:"status" example:"success"`

	// Mensagem descritiva da operação
	// @example "Pedido de download enfileirado"
	Message string `json:"message" example:"Pedido de download enfileirado"`

	// Dados retornados pela operação (apenas quando status = success)
	Data interface{} `json:"data,omitempty"`

	// Detalhes do erro (apenas quando status = error)
	Error *ErrorDetails `json:"error,omitempty"`

	// Metadados da resposta
	Meta *ResponseMeta `json:"meta"`
}

// ErrorDetails contém informações detalhadas sobre erros
type ErrorDetails struct {
	// Código do erro
	// @example "INVALID_CNPJ"
	Code string `json:"code" example:"INVALID_CNPJ"`

	// Mensagem do erro
	// @example "invalid CNPJ"
	Message string `json:"message" example:"invalid CNPJ"`

	// Detalhes adicionais do erro
	Details interface{} `json:"details,omitempty"`
}

// ResponseMeta contém metadados da resposta
type ResponseMeta struct {
	// Timestamp da resposta em formato ISO 8601
	// @example "2025-08-25T17:25:30.468715-03:00"
	Timestamp time.Time `json:"timestamp" example:"2025-08-25T17:25:30.468715-03:00"`

	// Tempo de execução da operação
	// @example "1.234s"
	ExecutionTime string `json:"execution_time,omitempty" example:"1.234s"`

	// ID da requisição para rastreamento
	// @example "req_123456789"
	RequestID string `json:"request_id,omitempty" example:"req_123456789"`

	// Versão da API
	// @example "v1"
	Version string `json:"version,omitempty" example:"v1"`
}

// Constantes para status padronizados
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusWarning = "warning"
)

// Constantes para códigos de erro padronizados
const (
	ErrorCodeInvalidCNPJ    = "INVALID_CNPJ"
	ErrorCodeInvalidDate    = "INVALID_DATE"
	ErrorCodeInvalidRange   = "INVALID_DATE_RANGE"
	ErrorCodeUnknownSystem  = "UNKNOWN_SYSTEM"
	ErrorCodeInvalidRequest = "INVALID_REQUEST"
	ErrorCodeJobNotFound    = "JOB_NOT_FOUND"
	ErrorCodeQueueFull      = "QUEUE_FULL"
	ErrorCodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError  = "INTERNAL_ERROR"
)

func newResponse(status, message string) *StandardResponse {
	return &StandardResponse{
		Status:  status,
		Message: message,
		Meta: &ResponseMeta{
			Timestamp: time.Now(),
			Version:   "v1",
		},
	}
}

// NewSuccessResponse cria uma resposta de sucesso padronizada
func NewSuccessResponse(message string, data interface{}) *StandardResponse {
	r := newResponse(StatusSuccess, message)
	r.Data = data
	return r
}

// NewErrorResponse cria uma resposta de erro padronizada
func NewErrorResponse(code, message string, details interface{}) *StandardResponse {
	r := newResponse(StatusError, "Erro na operação")
	r.Error = &ErrorDetails{
		Code:    code,
		Message: message,
		Details: details,
	}
	return r
}

// NewWarningResponse é usada quando o pedido existe mas ainda não terminou
func NewWarningResponse(message string, data interface{}) *StandardResponse {
	r := newResponse(StatusWarning, message)
	r.Data = data
	return r
}

// SetExecutionTime define o tempo de execução na resposta
func (r *StandardResponse) SetExecutionTime(duration time.Duration) {
	if r.Meta != nil {
		r.Meta.ExecutionTime = duration.String()
	}
}

// SetRequestID define o ID da requisição na resposta
func (r *StandardResponse) SetRequestID(requestID string) {
	if r.Meta != nil {
		r.Meta.RequestID = requestID
	}
}
