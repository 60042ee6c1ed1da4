package config

import "time"

// TimeoutConfig contém as pausas e limites de espera da automação do Receitanet BX
type TimeoutConfig struct {
	// Login
	LoginTypingPause time.Duration
	LoginVerifyDelay time.Duration
	LoginSettleDelay time.Duration
	RelaunchDelay    time.Duration

	// Navegação e formulários
	FieldFocusDelay     time.Duration
	SearchResultTimeout time.Duration
	ResultSettleDelay   time.Duration
	SelectionDelay      time.Duration
	PollInterval        time.Duration
	ClickAttempts       int

	// Download dos arquivos
	DownloadTimeout  time.Duration
	DownloadAttempts int
}

// DefaultTimeoutConfig retorna a configuração padrão de timeouts
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		// Login
		LoginTypingPause: 3 * time.Second,
		LoginVerifyDelay: 5 * time.Second,
		LoginSettleDelay: 5 * time.Second,
		RelaunchDelay:    5 * time.Second,

		// Navegação e formulários
		FieldFocusDelay:     2 * time.Second,
		SearchResultTimeout: 30 * time.Second,
		ResultSettleDelay:   5 * time.Second,
		SelectionDelay:      10 * time.Second,
		PollInterval:        500 * time.Millisecond,
		ClickAttempts:       3,

		// Download dos arquivos
		DownloadTimeout:  30 * time.Minute, // pacotes grandes demoram
		DownloadAttempts: 10,
	}
}
