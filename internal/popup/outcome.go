package popup

import (
	"errors"
	"fmt"
)

// Action is what the winning watcher does with the dialog it detected.
type Action int

const (
	// ActionNone leaves the dialog on screen.
	ActionNone Action = iota
	// ActionAcknowledge clicks the dialog and confirms it with Enter.
	ActionAcknowledge
)

// String returns the action name used in logs and JSON.
func (a Action) String() string {
	switch a {
	case ActionAcknowledge:
		return "acknowledge"
	default:
		return "none"
	}
}

// MarshalText lets the catalog be served as JSON.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Status is the short tag attached to every outcome.
type Status string

const (
	StatusFailure    Status = "Failure"
	StatusProcessing Status = "Processing"
	StatusProcessed  Status = "Processed"
)

// Result values returned to the download flows.
const (
	ResultCommunicationFailure = "communication failure"
	ResultRequestRegistered    = "request registered successfully"
	ResultRequestError         = "error registering request"
	ResultNoFile               = "no matching file located"
	ResultInvalidEndDate       = "end date must be <= current date"
	ResultProxyExpired         = "power of attorney expired"
	ResultProxyMissing         = "no power of attorney for this taxpayer ID"
)

// DefaultConfidence is the match threshold used by the submission catalog.
const DefaultConfidence = 0.8

// Outcome is one possible terminal state of a submitted request.
type Outcome struct {
	ProbeID    string  `json:"probe_id"`
	Confidence float64 `json:"confidence"`
	Action     Action  `json:"action"`
	LogMessage string  `json:"log_message"`
	Status     Status  `json:"status"`
	Result     string  `json:"result"`
}

// Registered reports whether the outcome means the request was accepted and
// files can be downloaded.
func (o Outcome) Registered() bool {
	return o.Result == ResultRequestRegistered
}

// Catalog is the fixed set of mutually exclusive outcomes watched for after a
// submission. Order carries no meaning.
type Catalog []Outcome

// Validate checks that the catalog can be raced.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New("popup catalog is empty")
	}
	seen := make(map[string]struct{}, len(c))
	for i, o := range c {
		if o.ProbeID == "" {
			return fmt.Errorf("popup catalog entry %d has no probe id", i)
		}
		if o.Confidence <= 0 || o.Confidence > 1 {
			return fmt.Errorf("popup %q: confidence %.2f out of range (0,1]", o.ProbeID, o.Confidence)
		}
		if _, dup := seen[o.ProbeID]; dup {
			return fmt.Errorf("popup %q listed twice", o.ProbeID)
		}
		seen[o.ProbeID] = struct{}{}
	}
	return nil
}

// Lookup returns the entry watching probeID.
func (c Catalog) Lookup(probeID string) (Outcome, bool) {
	for _, o := range c {
		if o.ProbeID == probeID {
			return o, true
		}
	}
	return Outcome{}, false
}

// ProbeIDs returns the probe ids in catalog order.
func (c Catalog) ProbeIDs() []string {
	ids := make([]string, len(c))
	for i, o := range c {
		ids[i] = o.ProbeID
	}
	return ids
}

// WithConfidence returns a copy of the catalog using confidence for every entry.
func (c Catalog) WithConfidence(confidence float64) Catalog {
	out := make(Catalog, len(c))
	for i, o := range c {
		o.Confidence = confidence
		out[i] = o
	}
	return out
}

// SubmissionCatalog lists the dialogs Receitanet BX can show after a file
// request is submitted.
func SubmissionCatalog() Catalog {
	return Catalog{
		{
			ProbeID:    "msg-falha-comunicacao",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "Communication failure with the Receitanet system",
			Status:     StatusFailure,
			Result:     ResultCommunicationFailure,
		},
		{
			ProbeID:    "pop-up-pedido",
			Confidence: DefaultConfidence,
			Action:     ActionAcknowledge,
			LogMessage: "Request registered successfully",
			Status:     StatusProcessing,
			Result:     ResultRequestRegistered,
		},
		{
			ProbeID:    "pop-up-error",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "Error registering the request",
			Status:     StatusFailure,
			Result:     ResultRequestError,
		},
		{
			ProbeID:    "pop-up-nao-encontrado",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "No file matching the search was found",
			Status:     StatusProcessed,
			Result:     ResultNoFile,
		},
		{
			ProbeID:    "popup-nenhum-arquivo",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "No file matching the search was found",
			Status:     StatusProcessed,
			Result:     ResultNoFile,
		},
		{
			ProbeID:    "msg-erro-data",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "End date must be equal to or before the current date",
			Status:     StatusFailure,
			Result:     ResultInvalidEndDate,
		},
		{
			ProbeID:    "msg-procuracao-vencida",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "Power of attorney expired",
			Status:     StatusFailure,
			Result:     ResultProxyExpired,
		},
		{
			ProbeID:    "msg-nao-existe-procuracao",
			Confidence: DefaultConfidence,
			Action:     ActionNone,
			LogMessage: "No power of attorney for this CNPJ",
			Status:     StatusFailure,
			Result:     ResultProxyMissing,
		},
	}
}
