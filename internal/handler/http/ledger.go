package http

import (
	"encoding/json"
	"net/http"

	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
	"github.com/paf-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/jwt"
)

type LedgerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Award(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	ledgerService ledger.LedgerService
	jwtService    jwt.Service
}

func NewLedgerHandler(ledgerService ledger.LedgerService, jwtService jwt.Service) LedgerHandler {
	return &LedgerHandlerImpl{
		ledgerService: ledgerService,
		jwtService:    jwtService,
	}
}

// List implements LedgerHandler.
func (l *LedgerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter ledger.LedgerFilter
	query := r.URL.Query()

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if month := query.Get("month"); month != "" {
		filter.Month = &month
	}
	if kind := query.Get("kind"); kind != "" {
		filter.Kind = &kind
	}

	result, err := l.ledgerService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Award implements LedgerHandler.
func (l *LedgerHandlerImpl) Award(w http.ResponseWriter, r *http.Request) {
	actor, err := l.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req ledger.AwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AuthorizedBy = actor.DisplayName()

	result, err := l.ledgerService.Award(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus hours awarded successfully", result)
}
