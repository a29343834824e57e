package payments

import (
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pagamentos", func(pr chi.Router) {
		pr.Post("/", createPaymentHandler(svc, log))
		pr.Get("/", listPaymentsHandler(svc, log))
		pr.Get("/{id}", getPaymentHandler(svc, log))
		pr.Put("/{id}", updatePaymentHandler(svc, log))
		pr.Delete("/{id}", deletePaymentHandler(svc, log))
	})

	r.Get("/consultas/{id}/pagamento", getByAppointmentHandler(svc, log))
}

type createPaymentRequest struct {
	IDConsulta      int64            `json:"id_consulta"`
	Valor           *decimal.Decimal `json:"valor" swaggertype:"string" example:"150.00"`
	DataPagamento   string           `json:"data_pagamento" example:"2024-06-01T15:00:00Z"`
	Metodo          string           `json:"metodo" enums:"Cartão de Crédito,Cartão de Débito,Dinheiro,Pix,Transferência"`
	StatusPagamento string           `json:"status_pagamento" enums:"Pendente,Pago,Cancelado,Reembolsado"`
}

type updatePaymentRequest struct {
	IDConsulta      *int64           `json:"id_consulta"`
	Valor           *decimal.Decimal `json:"valor" swaggertype:"string"`
	DataPagamento   *string          `json:"data_pagamento"`
	Metodo          *string          `json:"metodo"`
	StatusPagamento *string          `json:"status_pagamento"`
}

type Response struct {
	ID              int64     `json:"id_pagamento"`
	IDConsulta      int64     `json:"id_consulta"`
	Valor           string    `json:"valor" example:"150.00"`
	DataPagamento   time.Time `json:"data_pagamento"`
	Metodo          Method    `json:"metodo"`
	StatusPagamento Status    `json:"status_pagamento"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewResponse(p Payment) Response {
	return Response{
		ID:              p.ID,
		IDConsulta:      p.AppointmentID,
		Valor:           p.Amount.StringFixed(2),
		DataPagamento:   p.PaidAt,
		Metodo:          p.Method,
		StatusPagamento: p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// createPaymentHandler godoc
// @Summary Registrar pagamento
// @Description Un pagamento por consulta. data_pagamento default ahora, status_pagamento default Pendente.
// @Tags pagamentos
// @Accept json
// @Produce json
// @Param payload body createPaymentRequest true "Datos del pagamento"
// @Success 201 {object} Response
// @Failure 400 {object} httpx.ErrorResponse "invalid data / appointment already has a payment"
// @Failure 404 {object} httpx.ErrorResponse "consulta not found"
// @Router /pagamentos [post]
func createPaymentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPaymentRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "payments.create", err)
			return
		}

		var paidAt *time.Time
		if strings.TrimSpace(req.DataPagamento) != "" {
			t, fe := httpx.TimeField("data_pagamento", req.DataPagamento)
			if fe != nil {
				httpx.WriteError(w, r, log, "payments.create", apperr.Invalid("invalid data", *fe))
				return
			}
			paidAt = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			AppointmentID: req.IDConsulta,
			Amount:        req.Valor,
			PaidAt:        paidAt,
			Method:        strings.TrimSpace(req.Metodo),
			Status:        strings.TrimSpace(req.StatusPagamento),
		})
		if err != nil {
			httpx.WriteError(w, r, log, "payments.create", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, NewResponse(p))
	}
}

// listPaymentsHandler godoc
// @Summary Listar pagamentos
// @Tags pagamentos
// @Produce json
// @Success 200 {array} Response
// @Router /pagamentos [get]
func listPaymentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, "payments.list", err)
			return
		}
		out := make([]Response, 0, len(items))
		for _, p := range items {
			out = append(out, NewResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPaymentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "payments.get", err)
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "payments.get", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(p))
	}
}

// updatePaymentHandler godoc
// @Summary Actualizar pagamento
// @Tags pagamentos
// @Accept json
// @Produce json
// @Param id path int true "ID del pagamento"
// @Param payload body updatePaymentRequest true "Campos a cambiar"
// @Success 200 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /pagamentos/{id} [put]
func updatePaymentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "payments.update", err)
			return
		}

		var req updatePaymentRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "payments.update", err)
			return
		}

		in := UpdateInput{
			AppointmentID: req.IDConsulta,
			Amount:        req.Valor,
			Method:        req.Metodo,
			Status:        req.StatusPagamento,
		}
		if req.DataPagamento != nil {
			t, fe := httpx.TimeField("data_pagamento", *req.DataPagamento)
			if fe != nil {
				httpx.WriteError(w, r, log, "payments.update", apperr.Invalid("invalid data", *fe))
				return
			}
			in.PaidAt = &t
		}

		p, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, log, "payments.update", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(p))
	}
}

func deletePaymentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "payments.delete", err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, "payments.delete", err)
			return
		}
		httpx.NoContent(w)
	}
}

// getByAppointmentHandler godoc
// @Summary Pagamento de una consulta
// @Tags consultas
// @Produce json
// @Param id path int true "ID de la consulta"
// @Success 200 {object} Response
// @Failure 404 {object} httpx.ErrorResponse
// @Router /consultas/{id}/pagamento [get]
func getByAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "payments.get_by_appointment", err)
			return
		}
		p, err := svc.GetByAppointment(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "payments.get_by_appointment", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(p))
	}
}
