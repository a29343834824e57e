package tutors

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/tutores", func(tr chi.Router) {
		tr.Post("/", createTutorHandler(svc, log))
		tr.Get("/", listTutorsHandler(svc, log))
		tr.Get("/nome/{nome}", getTutorByNameHandler(svc, log))
		tr.Get("/{id}", getTutorHandler(svc, log))
		tr.Put("/{id}", updateTutorHandler(svc, log))
		tr.Delete("/{id}", deleteTutorHandler(svc, log))
	})
}

// createTutorRequest es el cuerpo para registrar un tutor.
type createTutorRequest struct {
	Nome     string `json:"nome" example:"Ana Silva"`
	Telefone string `json:"telefone" example:"(11) 91234-5678"`
	Email    string `json:"email" example:"ana@x.com"`
}

type updateTutorRequest struct {
	Nome     *string `json:"nome"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
}

// Response es la representación pública de un tutor.
// La usan también animals y appointments para anidar.
type Response struct {
	ID        int64     `json:"id_tutor"`
	Nome      string    `json:"nome"`
	Telefone  string    `json:"telefone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewResponse(t Tutor) Response {
	return Response{
		ID:        t.ID,
		Nome:      t.Name,
		Telefone:  t.Phone,
		Email:     t.Email,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// createTutorHandler godoc
// @Summary Registrar tutor
// @Description Crea un tutor. nome, telefone y email son obligatorios; el email es único.
// @Tags tutores
// @Accept json
// @Produce json
// @Param payload body createTutorRequest true "Datos del tutor"
// @Success 201 {object} Response
// @Failure 400 {object} httpx.ErrorResponse "missing required information / invalid data / email already registered"
// @Failure 500 {object} httpx.ErrorResponse
// @Router /tutores [post]
func createTutorHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTutorRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "tutors.create", err)
			return
		}

		t, err := svc.Create(r.Context(), CreateInput{
			Name:  req.Nome,
			Phone: req.Telefone,
			Email: req.Email,
		})
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.create", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, NewResponse(t))
	}
}

// listTutorsHandler godoc
// @Summary Listar tutores
// @Tags tutores
// @Produce json
// @Success 200 {array} Response
// @Failure 500 {object} httpx.ErrorResponse
// @Router /tutores [get]
func listTutorsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.list", err)
			return
		}

		out := make([]Response, 0, len(items))
		for _, t := range items {
			out = append(out, NewResponse(t))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getTutorHandler godoc
// @Summary Obtener tutor por id
// @Tags tutores
// @Produce json
// @Param id path int true "ID del tutor"
// @Success 200 {object} Response
// @Failure 400 {object} httpx.ErrorResponse "invalid id"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /tutores/{id} [get]
func getTutorHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.get", err)
			return
		}

		t, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.get", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(t))
	}
}

// getTutorByNameHandler godoc
// @Summary Buscar tutor por nombre exacto
// @Tags tutores
// @Produce json
// @Param nome path string true "Nombre exacto"
// @Success 200 {object} Response
// @Failure 404 {object} httpx.ErrorResponse
// @Router /tutores/nome/{nome} [get]
func getTutorByNameHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByName(r.Context(), httpx.PathParam(r, "nome"))
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.get_by_name", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(t))
	}
}

// updateTutorHandler godoc
// @Summary Actualizar tutor
// @Description Actualización parcial: solo cambian los campos enviados.
// @Tags tutores
// @Accept json
// @Produce json
// @Param id path int true "ID del tutor"
// @Param payload body updateTutorRequest true "Campos a cambiar"
// @Success 200 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /tutores/{id} [put]
func updateTutorHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.update", err)
			return
		}

		var req updateTutorRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "tutors.update", err)
			return
		}

		t, err := svc.Update(r.Context(), id, UpdateInput{
			Name:  req.Nome,
			Phone: req.Telefone,
			Email: req.Email,
		})
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.update", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(t))
	}
}

// deleteTutorHandler godoc
// @Summary Eliminar tutor
// @Description Falla con 409 si el tutor todavía tiene animales.
// @Tags tutores
// @Param id path int true "ID del tutor"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /tutores/{id} [delete]
func deleteTutorHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "tutors.delete", err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, "tutors.delete", err)
			return
		}
		httpx.NoContent(w)
	}
}
