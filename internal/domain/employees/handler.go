package employees

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/funcionarios", func(fr chi.Router) {
		fr.Post("/", createEmployeeHandler(svc, log))
		fr.Get("/", listEmployeesHandler(svc, log))
		fr.Get("/nome/{nome}", getEmployeeByNameHandler(svc, log))
		fr.Get("/{id}", getEmployeeHandler(svc, log))
		fr.Put("/{id}", updateEmployeeHandler(svc, log))
		fr.Delete("/{id}", deleteEmployeeHandler(svc, log))
	})
}

type createEmployeeRequest struct {
	Nome     string `json:"nome" example:"Dra. Carla"`
	Cargo    string `json:"cargo" example:"Veterinária"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

type updateEmployeeRequest struct {
	Nome     *string `json:"nome"`
	Cargo    *string `json:"cargo"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
}

type Response struct {
	ID        int64     `json:"id_funcionario"`
	Nome      string    `json:"nome"`
	Cargo     string    `json:"cargo"`
	Telefone  string    `json:"telefone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewResponse(e Employee) Response {
	return Response{
		ID:        e.ID,
		Nome:      e.Name,
		Cargo:     e.Role,
		Telefone:  e.Phone,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// createEmployeeHandler godoc
// @Summary Registrar funcionario
// @Tags funcionarios
// @Accept json
// @Produce json
// @Param payload body createEmployeeRequest true "Datos del funcionario"
// @Success 201 {object} Response
// @Failure 400 {object} httpx.ErrorResponse "invalid data / email already registered"
// @Router /funcionarios [post]
func createEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEmployeeRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "employees.create", err)
			return
		}
		e, err := svc.Create(r.Context(), CreateInput{
			Name:  req.Nome,
			Role:  req.Cargo,
			Phone: req.Telefone,
			Email: req.Email,
		})
		if err != nil {
			httpx.WriteError(w, r, log, "employees.create", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, NewResponse(e))
	}
}

func listEmployeesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, "employees.list", err)
			return
		}
		out := make([]Response, 0, len(items))
		for _, e := range items {
			out = append(out, NewResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "employees.get", err)
			return
		}
		e, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "employees.get", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(e))
	}
}

func getEmployeeByNameHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByName(r.Context(), httpx.PathParam(r, "nome"))
		if err != nil {
			httpx.WriteError(w, r, log, "employees.get_by_name", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(e))
	}
}

func updateEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "employees.update", err)
			return
		}
		var req updateEmployeeRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "employees.update", err)
			return
		}
		e, err := svc.Update(r.Context(), id, UpdateInput{
			Name:  req.Nome,
			Role:  req.Cargo,
			Phone: req.Telefone,
			Email: req.Email,
		})
		if err != nil {
			httpx.WriteError(w, r, log, "employees.update", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(e))
	}
}

func deleteEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "employees.delete", err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, "employees.delete", err)
			return
		}
		httpx.NoContent(w)
	}
}
