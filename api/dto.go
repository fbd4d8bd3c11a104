/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers using the lending predicates, not in
  DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/inversionesmg/lending-engine/lending"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ClientDTO represents a client in API responses.
type ClientDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
}

// CreateClientRequest is the request to register a client.
type CreateClientRequest struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
}

// CreateObligationRequest is the request to register a debt for a client.
type CreateObligationRequest struct {
	ID          string `json:"id,omitempty"`
	Principal   int64  `json:"principal"`
	DueDate     string `json:"due_date"`      // YYYY-MM-DD
	CreatedDate string `json:"created_date"`  // YYYY-MM-DD, defaults to today
}

// RecordPaymentRequest is the request to append a payment.
type RecordPaymentRequest struct {
	Amount int64  `json:"amount"`
	Date   string `json:"date"` // YYYY-MM-DD, defaults to today
}

// PaymentDTO represents a recorded payment.
type PaymentDTO struct {
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

// AssessmentDTO is the resolved picture of an obligation.
type AssessmentDTO struct {
	Status             string `json:"status"`
	RemainingPrincipal string `json:"remaining_principal"`
	PenaltyOwed        string `json:"penalty_owed"`
	TotalDue           string `json:"total_due"`
	DaysOverdue        int    `json:"days_overdue"`
	OverPaid           bool   `json:"over_paid,omitempty"`
}

// ObligationDTO represents an obligation with its assessment.
type ObligationDTO struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"client_id"`
	Principal   string        `json:"principal"`
	DueDate     string        `json:"due_date"`
	CreatedDate string        `json:"created_date"`
	Payments    []PaymentDTO  `json:"payments"`
	Assessment  AssessmentDTO `json:"assessment"`
}

// LookupResponse is the public consultation result: a client and all of
// their obligations resolved as of the requested date.
type LookupResponse struct {
	Client      ClientDTO       `json:"client"`
	AsOf        string          `json:"as_of"`
	Obligations []ObligationDTO `json:"obligations"`
	TotalDue    string          `json:"total_due"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toClientDTO(c lending.Client) ClientDTO {
	return ClientDTO{
		ID:             string(c.ID),
		Name:           c.Name,
		DocumentNumber: c.DocumentNumber,
		Phone:          c.Phone,
		Email:          c.Email,
	}
}

func toAssessmentDTO(a lending.Assessment) AssessmentDTO {
	return AssessmentDTO{
		Status:             string(a.Status),
		RemainingPrincipal: a.RemainingPrincipal.String(),
		PenaltyOwed:        a.PenaltyOwed.String(),
		TotalDue:           a.TotalDue.String(),
		DaysOverdue:        a.DaysOverdue,
		OverPaid:           a.OverPaid,
	}
}

func toObligationDTO(o lending.Obligation, a lending.Assessment) ObligationDTO {
	payments := make([]PaymentDTO, len(o.Payments))
	for i, p := range o.Payments {
		payments[i] = PaymentDTO{Amount: p.Amount.String(), Date: p.Date.String()}
	}
	return ObligationDTO{
		ID:          string(o.ID),
		ClientID:    string(o.ClientID),
		Principal:   o.Principal.String(),
		DueDate:     o.DueDate.String(),
		CreatedDate: o.CreatedDate.String(),
		Payments:    payments,
		Assessment:  toAssessmentDTO(a),
	}
}
