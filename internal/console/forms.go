package console

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/platform/httpx"
	"vet-clinic/internal/platform/validate"

	"github.com/shopspring/decimal"
)

var (
	phoneRe = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
	digitRe = regexp.MustCompile(`\d`)
)

// Payloads tal como los espera la API.

type TutorPayload struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

type EmployeePayload struct {
	Nome     string `json:"nome"`
	Cargo    string `json:"cargo"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

// AnimalPayload: ObservacoesMedicas nil viaja como null y en un PUT borra la nota.
type AnimalPayload struct {
	Nome               string          `json:"nome"`
	Especie            string          `json:"especie"`
	Raca               string          `json:"raca"`
	Peso               decimal.Decimal `json:"peso"`
	Sexo               string          `json:"sexo"`
	DataNascimento     string          `json:"data_nascimento"`
	ObservacoesMedicas *string         `json:"observacoes_medicas"`
	StatusAnimal       string          `json:"status_animal,omitempty"`
	IDTutor            int64           `json:"id_tutor"`
}

type AppointmentPayload struct {
	IDAnimal       int64           `json:"id_animal"`
	IDFuncionario  int64           `json:"id_funcionario"`
	DataHora       string          `json:"data_hora"`
	Diagnostico    *string         `json:"diagnostico"`
	StatusConsulta string          `json:"status_consulta,omitempty"`
	Preco          decimal.Decimal `json:"preco"`
}

type PaymentPayload struct {
	IDConsulta      int64           `json:"id_consulta"`
	Valor           decimal.Decimal `json:"valor"`
	DataPagamento   string          `json:"data_pagamento,omitempty"`
	Metodo          string          `json:"metodo"`
	StatusPagamento string          `json:"status_pagamento,omitempty"`
}

// Formularios: los campos son el texto tal cual lo tipea el usuario.

type TutorForm struct {
	Nome     string
	Telefone string
	Email    string
}

func (f TutorForm) Payload() (TutorPayload, error) {
	var v validate.Collector
	checkName(&v, "nome", f.Nome)
	checkPhone(&v, "telefone", f.Telefone)
	checkEmail(&v, "email", f.Email)
	if err := v.Err(); err != nil {
		return TutorPayload{}, err
	}
	return TutorPayload{
		Nome:     strings.TrimSpace(f.Nome),
		Telefone: strings.TrimSpace(f.Telefone),
		Email:    strings.TrimSpace(f.Email),
	}, nil
}

type EmployeeForm struct {
	Nome     string
	Cargo    string
	Telefone string
	Email    string
}

func (f EmployeeForm) Payload() (EmployeePayload, error) {
	var v validate.Collector
	checkName(&v, "nome", f.Nome)
	v.Required("cargo", f.Cargo)
	checkPhone(&v, "telefone", f.Telefone)
	checkEmail(&v, "email", f.Email)
	if err := v.Err(); err != nil {
		return EmployeePayload{}, err
	}
	return EmployeePayload{
		Nome:     strings.TrimSpace(f.Nome),
		Cargo:    strings.TrimSpace(f.Cargo),
		Telefone: strings.TrimSpace(f.Telefone),
		Email:    strings.TrimSpace(f.Email),
	}, nil
}

type AnimalForm struct {
	Nome               string
	Especie            string
	Raca               string
	Peso               string
	Sexo               string
	DataNascimento     string
	ObservacoesMedicas string
	StatusAnimal       string
	IDTutor            int64
}

func (f AnimalForm) Payload(now time.Time) (AnimalPayload, error) {
	var v validate.Collector
	checkName(&v, "nome", f.Nome)
	v.Required("especie", f.Especie)
	v.Required("raca", f.Raca)
	v.Required("sexo", f.Sexo)
	peso, _ := checkAmount(&v, "peso", f.Peso)
	birth, _ := checkPastDate(&v, "data_nascimento", f.DataNascimento, now)
	if s := strings.TrimSpace(f.StatusAnimal); s != "" {
		v.OneOf("status_animal", s, animals.Statuses)
	}
	v.Present("id_tutor", f.IDTutor > 0)
	if err := v.Err(); err != nil {
		return AnimalPayload{}, err
	}
	return AnimalPayload{
		Nome:               strings.TrimSpace(f.Nome),
		Especie:            strings.TrimSpace(f.Especie),
		Raca:               strings.TrimSpace(f.Raca),
		Peso:               peso,
		Sexo:               strings.TrimSpace(f.Sexo),
		DataNascimento:     birth.Format("2006-01-02"),
		ObservacoesMedicas: optional(f.ObservacoesMedicas),
		StatusAnimal:       strings.TrimSpace(f.StatusAnimal),
		IDTutor:            f.IDTutor,
	}, nil
}

type AppointmentForm struct {
	IDAnimal       int64
	IDFuncionario  int64
	DataHora       string
	Diagnostico    string
	StatusConsulta string
	Preco          string
}

// Payload valida la consulta; isNew exige que la fecha no esté en el pasado.
func (f AppointmentForm) Payload(now time.Time, isNew bool) (AppointmentPayload, error) {
	var v validate.Collector
	v.Present("id_animal", f.IDAnimal > 0)
	v.Present("id_funcionario", f.IDFuncionario > 0)
	var at time.Time
	if v.Required("data_hora", f.DataHora) {
		t, err := httpx.ParseTime(f.DataHora)
		if v.Check(err == nil, "data_hora", "must be a valid date and time") {
			at = t
			if isNew {
				v.Check(!at.Before(now), "data_hora", "must not be in the past")
			}
		}
	}
	if s := strings.TrimSpace(f.StatusConsulta); s != "" {
		v.OneOf("status_consulta", s, appointments.Statuses)
	}
	preco, _ := checkAmount(&v, "preco", f.Preco)
	if err := v.Err(); err != nil {
		return AppointmentPayload{}, err
	}
	return AppointmentPayload{
		IDAnimal:       f.IDAnimal,
		IDFuncionario:  f.IDFuncionario,
		DataHora:       at.UTC().Format(time.RFC3339),
		Diagnostico:    optional(f.Diagnostico),
		StatusConsulta: strings.TrimSpace(f.StatusConsulta),
		Preco:          preco,
	}, nil
}

type PaymentForm struct {
	IDConsulta      int64
	Valor           string
	DataPagamento   string
	Metodo          string
	StatusPagamento string
}

func (f PaymentForm) Payload(now time.Time) (PaymentPayload, error) {
	var v validate.Collector
	v.Present("id_consulta", f.IDConsulta > 0)
	valor, _ := checkAmount(&v, "valor", f.Valor)
	paidAt, _ := checkPastDate(&v, "data_pagamento", f.DataPagamento, now)
	if v.Required("metodo", f.Metodo) {
		v.OneOf("metodo", strings.TrimSpace(f.Metodo), payments.Methods)
	}
	if s := strings.TrimSpace(f.StatusPagamento); s != "" {
		v.OneOf("status_pagamento", s, payments.Statuses)
	}
	if err := v.Err(); err != nil {
		return PaymentPayload{}, err
	}
	return PaymentPayload{
		IDConsulta:      f.IDConsulta,
		Valor:           valor,
		DataPagamento:   paidAt.UTC().Format(time.RFC3339),
		Metodo:          strings.TrimSpace(f.Metodo),
		StatusPagamento: strings.TrimSpace(f.StatusPagamento),
	}, nil
}

func checkName(v *validate.Collector, field, name string) {
	if !v.Required(field, name) {
		return
	}
	name = strings.TrimSpace(name)
	if v.Check(!digitRe.MatchString(name), field, "must not contain digits") {
		v.Check(utf8.RuneCountInString(name) >= 3, field, "must have at least 3 characters")
	}
}

func checkPhone(v *validate.Collector, field, phone string) {
	if v.Required(field, phone) {
		v.Check(phoneRe.MatchString(strings.TrimSpace(phone)), field, "must match (00) 0000-0000 or (00) 00000-0000")
	}
}

func checkEmail(v *validate.Collector, field, email string) {
	if v.Required(field, email) {
		v.Email(field, email)
	}
}

// checkPastDate: obligatoria, válida y no futura.
func checkPastDate(v *validate.Collector, field, raw string, now time.Time) (time.Time, bool) {
	if !v.Required(field, raw) {
		return time.Time{}, false
	}
	t, err := httpx.ParseTime(raw)
	if !v.Check(err == nil, field, "must be a valid date") {
		return time.Time{}, false
	}
	return t, v.Check(!t.After(now), field, "must not be in the future")
}

func checkAmount(v *validate.Collector, field, raw string) (decimal.Decimal, bool) {
	if !v.Required(field, raw) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if !v.Check(err == nil, field, "must be a number") {
		return decimal.Decimal{}, false
	}
	return d, v.NonNegative(field, d)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
