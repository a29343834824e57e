package animals

import (
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/patch"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/animais", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc, log))
		ar.Get("/", listAnimalsHandler(svc, log))
		ar.Get("/{id}", getAnimalHandler(svc, log))
		ar.Put("/{id}", updateAnimalHandler(svc, log))
		ar.Delete("/{id}", deleteAnimalHandler(svc, log))
	})

	// Animales de un tutor
	r.Get("/tutores/{id}/animais", listByTutorHandler(svc, log))
}

type createAnimalRequest struct {
	Nome               string           `json:"nome" example:"Rex"`
	Especie            string           `json:"especie" example:"Cachorro"`
	Raca               string           `json:"raca" example:"Labrador"`
	Peso               *decimal.Decimal `json:"peso" swaggertype:"string" example:"12.50"`
	Sexo               string           `json:"sexo" example:"M"`
	DataNascimento     string           `json:"data_nascimento" example:"2020-05-01"`
	ObservacoesMedicas *string          `json:"observacoes_medicas"`
	StatusAnimal       string           `json:"status_animal" enums:"Ativo,Inativo,Falecido"`
	IDTutor            int64            `json:"id_tutor"`
}

type updateAnimalRequest struct {
	Nome           *string          `json:"nome"`
	Especie        *string          `json:"especie"`
	Raca           *string          `json:"raca"`
	Peso           *decimal.Decimal `json:"peso" swaggertype:"string"`
	Sexo           *string          `json:"sexo"`
	DataNascimento *string          `json:"data_nascimento"`
	// null limpia las observaciones
	ObservacoesMedicas patch.Field[string] `json:"observacoes_medicas" swaggertype:"string"`
	StatusAnimal       *string             `json:"status_animal"`
	IDTutor            *int64              `json:"id_tutor"`
}

// Response es la representación pública de un animal.
type Response struct {
	ID                 int64     `json:"id_animal"`
	Nome               string    `json:"nome"`
	Especie            string    `json:"especie"`
	Raca               string    `json:"raca"`
	Peso               string    `json:"peso" example:"12.50"`
	Sexo               string    `json:"sexo"`
	DataNascimento     string    `json:"data_nascimento" example:"2020-05-01"`
	ObservacoesMedicas *string   `json:"observacoes_medicas"`
	StatusAnimal       Status    `json:"status_animal"`
	IDTutor            int64     `json:"id_tutor"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func NewResponse(a Animal) Response {
	return Response{
		ID:                 a.ID,
		Nome:               a.Name,
		Especie:            a.Species,
		Raca:               a.Breed,
		Peso:               a.Weight.StringFixed(2),
		Sexo:               a.Sex,
		DataNascimento:     a.BirthDate.Format(dateLayout),
		ObservacoesMedicas: a.MedicalNotes,
		StatusAnimal:       a.Status,
		IDTutor:            a.TutorID,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toResponses(items []Animal) []Response {
	out := make([]Response, 0, len(items))
	for _, a := range items {
		out = append(out, NewResponse(a))
	}
	return out
}

// parseBirthDate: vacío = ausente.
func parseBirthDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, fe := httpx.TimeField("data_nascimento", s)
	if fe != nil {
		return nil, apperr.Invalid("invalid data", *fe)
	}
	return &t, nil
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Crea un animal para un tutor existente. status_animal es opcional (default Ativo).
// @Tags animais
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal; data_nascimento YYYY-MM-DD"
// @Success 201 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "tutor not found"
// @Router /animais [post]
func createAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "animals.create", err)
			return
		}

		bd, err := parseBirthDate(req.DataNascimento)
		if err != nil {
			httpx.WriteError(w, r, log, "animals.create", err)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:         req.Nome,
			Species:      req.Especie,
			Breed:        req.Raca,
			Weight:       req.Peso,
			Sex:          req.Sexo,
			BirthDate:    bd,
			MedicalNotes: req.ObservacoesMedicas,
			Status:       strings.TrimSpace(req.StatusAnimal),
			TutorID:      req.IDTutor,
		})
		if err != nil {
			httpx.WriteError(w, r, log, "animals.create", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, NewResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags animais
// @Produce json
// @Success 200 {array} Response
// @Router /animais [get]
func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, "animals.list", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal por id
// @Tags animais
// @Produce json
// @Param id path int true "ID del animal"
// @Success 200 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /animais/{id} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "animals.get", err)
			return
		}
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "animals.get", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(a))
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description Actualización parcial. observacoes_medicas en null limpia el campo.
// @Tags animais
// @Accept json
// @Produce json
// @Param id path int true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a cambiar"
// @Success 200 {object} Response
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /animais/{id} [put]
func updateAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "animals.update", err)
			return
		}

		var req updateAnimalRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, "animals.update", err)
			return
		}

		in := UpdateInput{
			Name:         req.Nome,
			Species:      req.Especie,
			Breed:        req.Raca,
			Weight:       req.Peso,
			Sex:          req.Sexo,
			MedicalNotes: req.ObservacoesMedicas.Ptr(),
			ClearNotes:   req.ObservacoesMedicas.Null,
			Status:       req.StatusAnimal,
			TutorID:      req.IDTutor,
		}
		if req.DataNascimento != nil {
			t, fe := httpx.TimeField("data_nascimento", *req.DataNascimento)
			if fe != nil {
				httpx.WriteError(w, r, log, "animals.update", apperr.Invalid("invalid data", *fe))
				return
			}
			in.BirthDate = &t
		}

		a, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, log, "animals.update", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, NewResponse(a))
	}
}

// deleteAnimalHandler godoc
// @Summary Eliminar animal
// @Description Falla con 409 si el animal tiene consultas.
// @Tags animais
// @Param id path int true "ID del animal"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /animais/{id} [delete]
func deleteAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "animals.delete", err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, "animals.delete", err)
			return
		}
		httpx.NoContent(w)
	}
}

// listByTutorHandler godoc
// @Summary Animales de un tutor
// @Description Ordenados por nombre. 404 si el tutor no existe.
// @Tags tutores
// @Produce json
// @Param id path int true "ID del tutor"
// @Success 200 {array} Response
// @Failure 404 {object} httpx.ErrorResponse
// @Router /tutores/{id}/animais [get]
func listByTutorHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.ParseID(r, "id")
		if err != nil {
			httpx.WriteError(w, r, log, "animals.list_by_tutor", err)
			return
		}
		items, err := svc.ListByTutor(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, "animals.list_by_tutor", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}
