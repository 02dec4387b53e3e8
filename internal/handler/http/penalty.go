package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/jwt"
)

type PenaltyHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
	SavePenalties(w http.ResponseWriter, r *http.Request)
}

type PenaltyHandlerImpl struct {
	penaltyService penalty.PenaltyService
	ledgerService  ledger.LedgerService
	jwtService     jwt.Service
}

func NewPenaltyHandler(penaltyService penalty.PenaltyService, ledgerService ledger.LedgerService, jwtService jwt.Service) PenaltyHandler {
	return &PenaltyHandlerImpl{
		penaltyService: penaltyService,
		ledgerService:  ledgerService,
		jwtService:     jwtService,
	}
}

// GetSettings implements PenaltyHandler.
func (p *PenaltyHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := p.penaltyService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// UpdateSettings implements PenaltyHandler.
func (p *PenaltyHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req penalty.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := p.penaltyService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalty settings updated successfully", settings)
}

// Calculate implements PenaltyHandler.
func (p *PenaltyHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	result, err := p.penaltyService.Calculate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SavePenalties implements PenaltyHandler. The authenticated caller is the
// authoriser; a client-supplied authorized_by is ignored.
func (p *PenaltyHandlerImpl) SavePenalties(w http.ResponseWriter, r *http.Request) {
	actor, err := p.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req ledger.SavePenaltiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SavePenalties decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AuthorizedBy = actor.DisplayName()

	result, err := p.ledgerService.SavePenalties(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalties processed", result)
}
