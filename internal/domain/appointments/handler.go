package appointments

import (
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/patch"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/consultas", func(cr chi.Router) {
		cr.Post("/", createAppointmentHandler(svc, log))
		cr.Get("/", listAppointmentsHandler(svc, log))
		cr.Get("/{id}", getAppointmentHandler(svc, log))
		cr.Put("/{id}", updateAppointmentHandler(svc, log))
		cr.Delete("/{id}", deleteAppointmentHandler(svc, log))
		cr.Get("/{id}/animal", getAppointmentAnimalHandler(svc, log))
	})

	// Consultas de un animal. /animais/tutor/{id} se mantiene por compatibilidad
	// con clientes existentes; {id} es el id del animal.
	r.Get("/animais/tutor/{id}", listByAnimalHandler(svc, log))
	r.Get("/animais/{id}/consultas", listByAnimalHandler(svc, log))

	r.Get("/funcionarios/{id}/consultas", listByEmployeeHandler(svc, log))
}

type createAppointmentRequest struct {
	IDAnimal       int64            `json:"id_animal"`
	IDFuncionario  int64            `json:"id_funcionario"`
	DataHora       string           `json:"data_hora" example:"2024-06-01T14:30:00Z"`
	Diagnostico    *string          `json:"diagnostico"`
	StatusConsulta string           `json:"status_consulta" enums:"Agendada,Realizada,Cancelada,Remarcada,Não Compareceu,Em Andamento"`
	Preco          *decimal.Decimal `json:"preco" swaggertype:"string" example:"150.00"`
}

type updateAppointmentRequest struct {
	IDAnimal       *int64              `json:"id_animal"`
	IDFuncionario  *int64              `json:"id_funcionario"`
	DataHora       *string             `json:"data_hora"`
	Diagnostico    patch.Field[string] `json:"diagnostico" swaggertype:"string"`
	StatusConsulta *string             `json:"status_consulta"`
	Preco          *decimal.Decimal    `json:"preco" swaggertype:"string"`
}

// Response es una consulta sin relaciones.
type Response struct {
	ID             int64     `json:"id_consulta"`
	IDAnimal       int64     `json:"id_animal"`
	IDFuncionario  int64     `json:"id_funcionario"`
	DataHora       time.Time `json:"data_hora"`
	Diagnostico    *string   `json:"diagnostico"`
	StatusConsulta Status    `json:"status_consulta"`
	Preco          string    `json:"preco" example:"150.00"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type animalWithTutor struct {
	animals.Response
	Tutor tutors.Response `json:"tutor"`
}

// DetailedResponse incluye animal (con tutor) y funcionario.
type DetailedResponse struct {
	Response
	Animal      animalWithTutor    `json:"animal"`
	Funcionario employees.Response `json:"funcionario"`
}

func NewResponse(a Appointment) Response {
	return Response{
		ID:             a.ID,
		IDAnimal:       a.AnimalID,
		IDFuncionario:  a.EmployeeID,
		DataHora:       a.ScheduledAt,
		Diagnostico:    a.Diagnosis,
		StatusConsulta: a.Status,
		Preco:          a.Price.StringFixed(2),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func NewDetailedResponse(d Detailed) DetailedResponse {
	return DetailedResponse{
		Response: NewResponse(d.Appointment),
		Animal: animalWithTutor{
			Response: animals.NewResponse(d.Animal),
			Tutor:    tutors.NewResponse(d.Tutor),
		},
		Funcionario: employees.NewResponse(d.Employee),
	}
}

func toResponses(items []Appointment) []Response {
	out := make([]Response, 0, len(items))
	for _, a := range items {
		out = append(out, NewResponse(a))
	}
	return out
}

// createAppointmentHandler godoc
// @Summary Agendar consulta
// @Description Crea una consulta para un animal y un funcionario existentes. status_consulta es opcional (default Agendada).
// @Tags consultas
// @Accept json
// @Produce json
// @Param payload body createAppointmentRequest true "Datos de la consulta; data_hora RFC3339"
// @Success 201 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "animal/funcionario not found"
// @Router /consultas [post]
func createAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "appointments.create", err)
			return
		}

		var when *time.Time
		if strings.TrimSpace(req.DataHora) != "" {
			t, fe := httpx.TimeField("data_hora", req.DataHora)
			if fe != nil {
				httpx.WriteError(w, r, log, "appointments.create", apperr.Invalid("invalid data", *fe))
				return
			}
			when = &t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			AnimalID:    req.IDAnimal,
			EmployeeID:  req.IDFuncionario,
			ScheduledAt: when,
			Diagnosis:   req.Diagnostico,
			Status:      strings.TrimSpace(req.StatusConsulta),
			Price:       req.Preco,
		})
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.create", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, NewResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar consultas
// @Description Incluye animal (con su tutor) y funcionario. Ordenadas por data_hora desc.
// @Tags consultas
// @Produce json
// @Success 200 {array} DetailedResponse
// @Router /consultas [get]
func listAppointmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.list", err)
			return
		}
		out := make([]DetailedResponse, 0, len(items))
		for _, d := range items {
			out = append(out, NewDetailedResponse(d))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getAppointmentHandler godoc
// @Summary Obtener consulta por id
// @Tags consultas
// @Produce json
// @Param id path int true "ID de la consulta"
// @Success 200 {object} DetailedResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /consultas/{id} [get]
func getAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.get", err)
			return
		}
		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.get", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewDetailedResponse(d))
	}
}

// getAppointmentAnimalHandler godoc
// @Summary Animal de una consulta
// @Tags consultas
// @Produce json
// @Param id path int true "ID de la consulta"
// @Success 200 {object} animals.Response
// @Failure 404 {object} httpx.ErrorResponse
// @Router /consultas/{id}/animal [get]
func getAppointmentAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.animal", err)
			return
		}
		a, err := svc.AnimalOf(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.animal", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, animals.NewResponse(a))
	}
}

// updateAppointmentHandler godoc
// @Summary Actualizar consulta
// @Description Actualización parcial; diagnostico en null lo limpia. preco negativo o status desconocido devuelven 400.
// @Tags consultas
// @Accept json
// @Produce json
// @Param id path int true "ID de la consulta"
// @Param payload body updateAppointmentRequest true "Campos a cambiar"
// @Success 200 {object} DetailedResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /consultas/{id} [put]
func updateAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.update", err)
			return
		}

		var req updateAppointmentRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "appointments.update", err)
			return
		}

		in := UpdateInput{
			AnimalID:       req.IDAnimal,
			EmployeeID:     req.IDFuncionario,
			Diagnosis:      req.Diagnostico.Ptr(),
			ClearDiagnosis: req.Diagnostico.Null,
			Status:         req.StatusConsulta,
			Price:          req.Preco,
		}
		if req.DataHora != nil {
			t, fe := httpx.TimeField("data_hora", *req.DataHora)
			if fe != nil {
				httpx.WriteError(w, r, log, "appointments.update", apperr.Invalid("invalid data", *fe))
				return
			}
			in.ScheduledAt = &t
		}

		d, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.update", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewDetailedResponse(d))
	}
}

// deleteAppointmentHandler godoc
// @Summary Eliminar consulta
// @Description Falla con 409 si la consulta tiene un pagamento.
// @Tags consultas
// @Param id path int true "ID de la consulta"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /consultas/{id} [delete]
func deleteAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.delete", err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, "appointments.delete", err)
			return
		}
		httpx.NoContent(w)
	}
}

// listByAnimalHandler godoc
// @Summary Consultas de un animal
// @Description Ordenadas por data_hora desc. 404 si el animal no existe.
// @Tags animais
// @Produce json
// @Param id path int true "ID del animal"
// @Success 200 {array} Response
// @Failure 404 {object} httpx.ErrorResponse
// @Router /animais/{id}/consultas [get]
func listByAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.list_by_animal", err)
			return
		}
		items, err := svc.ListByAnimal(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.list_by_animal", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

// listByEmployeeHandler godoc
// @Summary Consultas de un funcionario
// @Tags funcionarios
// @Produce json
// @Param id path int true "ID del funcionario"
// @Success 200 {array} Response
// @Failure 404 {object} httpx.ErrorResponse
// @Router /funcionarios/{id}/consultas [get]
func listByEmployeeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.list_by_employee", err)
			return
		}
		items, err := svc.ListByEmployee(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "appointments.list_by_employee", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}
