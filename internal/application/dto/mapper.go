package dto

import (
	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"
)

// ResponseMapper convierte resultados del dominio a DTOs de respuesta
type ResponseMapper struct{}

// NewResponseMapper crea una nueva instancia del mapper
func NewResponseMapper() *ResponseMapper {
	return &ResponseMapper{}
}

// ToLoanDistributionResponse garantiza bins como arreglo vacío y no null
func (m *ResponseMapper) ToLoanDistributionResponse(dist services.LoanDistribution) *LoanDistributionResponse {
	bins := dist.Bins
	if bins == nil {
		bins = []entities.DistributionBin{}
	}
	return &LoanDistributionResponse{From: dist.From, To: dist.To, Bins: bins}
}

// ToLoans devuelve [] en lugar de null cuando no hay préstamos
func (m *ResponseMapper) ToLoans(loans []entities.Loan) []entities.Loan {
	if loans == nil {
		return []entities.Loan{}
	}
	return loans
}

// ToStakingUsers devuelve [] en lugar de null cuando no hay stakers
func (m *ResponseMapper) ToStakingUsers(users []entities.StakingUser) []entities.StakingUser {
	if users == nil {
		return []entities.StakingUser{}
	}
	return users
}
