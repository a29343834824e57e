// Package console reúne la lógica del cliente de la clínica: cliente tipado
// de la API, estado de listas (búsqueda, paginado, selección), joins en
// memoria, formularios con validación local y el dashboard.
package console

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/platform/httpclient"
)

// Client habla con la API bajo baseURL (p.ej. http://localhost:3001/api).
type Client struct {
	http *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewClientWith usa un transporte ya configurado.
func NewClientWith(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func idPath(prefix string, id int64, suffix ...string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// call decodifica la respuesta en un T nuevo.
func call[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	var out T
	err := c.http.DoJSON(ctx, method, path, in, &out)
	return out, err
}

// Tutores

func (c *Client) Tutors(ctx context.Context) ([]tutors.Response, error) {
	return call[[]tutors.Response](ctx, c, http.MethodGet, "/tutores", nil)
}

func (c *Client) Tutor(ctx context.Context, id int64) (tutors.Response, error) {
	return call[tutors.Response](ctx, c, http.MethodGet, idPath("/tutores", id), nil)
}

func (c *Client) TutorByName(ctx context.Context, name string) (tutors.Response, error) {
	return call[tutors.Response](ctx, c, http.MethodGet, "/tutores/nome/"+url.PathEscape(name), nil)
}

func (c *Client) TutorAnimals(ctx context.Context, id int64) ([]animals.Response, error) {
	return call[[]animals.Response](ctx, c, http.MethodGet, idPath("/tutores", id, "animais"), nil)
}

func (c *Client) CreateTutor(ctx context.Context, in TutorPayload) (tutors.Response, error) {
	return call[tutors.Response](ctx, c, http.MethodPost, "/tutores", in)
}

func (c *Client) UpdateTutor(ctx context.Context, id int64, in TutorPayload) (tutors.Response, error) {
	return call[tutors.Response](ctx, c, http.MethodPut, idPath("/tutores", id), in)
}

func (c *Client) DeleteTutor(ctx context.Context, id int64) error {
	return c.http.DoJSON(ctx, http.MethodDelete, idPath("/tutores", id), nil, nil)
}

// Animales

func (c *Client) Animals(ctx context.Context) ([]animals.Response, error) {
	return call[[]animals.Response](ctx, c, http.MethodGet, "/animais", nil)
}

func (c *Client) Animal(ctx context.Context, id int64) (animals.Response, error) {
	return call[animals.Response](ctx, c, http.MethodGet, idPath("/animais", id), nil)
}

func (c *Client) AnimalAppointments(ctx context.Context, id int64) ([]appointments.Response, error) {
	return call[[]appointments.Response](ctx, c, http.MethodGet, idPath("/animais", id, "consultas"), nil)
}

func (c *Client) CreateAnimal(ctx context.Context, in AnimalPayload) (animals.Response, error) {
	return call[animals.Response](ctx, c, http.MethodPost, "/animais", in)
}

func (c *Client) UpdateAnimal(ctx context.Context, id int64, in AnimalPayload) (animals.Response, error) {
	return call[animals.Response](ctx, c, http.MethodPut, idPath("/animais", id), in)
}

func (c *Client) DeleteAnimal(ctx context.Context, id int64) error {
	return c.http.DoJSON(ctx, http.MethodDelete, idPath("/animais", id), nil, nil)
}

// Funcionarios

func (c *Client) Employees(ctx context.Context) ([]employees.Response, error) {
	return call[[]employees.Response](ctx, c, http.MethodGet, "/funcionarios", nil)
}

func (c *Client) Employee(ctx context.Context, id int64) (employees.Response, error) {
	return call[employees.Response](ctx, c, http.MethodGet, idPath("/funcionarios", id), nil)
}

func (c *Client) EmployeeByName(ctx context.Context, name string) (employees.Response, error) {
	return call[employees.Response](ctx, c, http.MethodGet, "/funcionarios/nome/"+url.PathEscape(name), nil)
}

func (c *Client) EmployeeAppointments(ctx context.Context, id int64) ([]appointments.Response, error) {
	return call[[]appointments.Response](ctx, c, http.MethodGet, idPath("/funcionarios", id, "consultas"), nil)
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeePayload) (employees.Response, error) {
	return call[employees.Response](ctx, c, http.MethodPost, "/funcionarios", in)
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, in EmployeePayload) (employees.Response, error) {
	return call[employees.Response](ctx, c, http.MethodPut, idPath("/funcionarios", id), in)
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.http.DoJSON(ctx, http.MethodDelete, idPath("/funcionarios", id), nil, nil)
}

// Consultas

func (c *Client) Appointments(ctx context.Context) ([]appointments.DetailedResponse, error) {
	return call[[]appointments.DetailedResponse](ctx, c, http.MethodGet, "/consultas", nil)
}

func (c *Client) Appointment(ctx context.Context, id int64) (appointments.DetailedResponse, error) {
	return call[appointments.DetailedResponse](ctx, c, http.MethodGet, idPath("/consultas", id), nil)
}

func (c *Client) AppointmentAnimal(ctx context.Context, id int64) (animals.Response, error) {
	return call[animals.Response](ctx, c, http.MethodGet, idPath("/consultas", id, "animal"), nil)
}

func (c *Client) AppointmentPayment(ctx context.Context, id int64) (payments.Response, error) {
	return call[payments.Response](ctx, c, http.MethodGet, idPath("/consultas", id, "pagamento"), nil)
}

func (c *Client) CreateAppointment(ctx context.Context, in AppointmentPayload) (appointments.Response, error) {
	return call[appointments.Response](ctx, c, http.MethodPost, "/consultas", in)
}

func (c *Client) UpdateAppointment(ctx context.Context, id int64, in AppointmentPayload) (appointments.Response, error) {
	return call[appointments.Response](ctx, c, http.MethodPut, idPath("/consultas", id), in)
}

func (c *Client) DeleteAppointment(ctx context.Context, id int64) error {
	return c.http.DoJSON(ctx, http.MethodDelete, idPath("/consultas", id), nil, nil)
}

// Pagamentos

func (c *Client) Payments(ctx context.Context) ([]payments.Response, error) {
	return call[[]payments.Response](ctx, c, http.MethodGet, "/pagamentos", nil)
}

func (c *Client) Payment(ctx context.Context, id int64) (payments.Response, error) {
	return call[payments.Response](ctx, c, http.MethodGet, idPath("/pagamentos", id), nil)
}

func (c *Client) CreatePayment(ctx context.Context, in PaymentPayload) (payments.Response, error) {
	return call[payments.Response](ctx, c, http.MethodPost, "/pagamentos", in)
}

func (c *Client) UpdatePayment(ctx context.Context, id int64, in PaymentPayload) (payments.Response, error) {
	return call[payments.Response](ctx, c, http.MethodPut, idPath("/pagamentos", id), in)
}

func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.http.DoJSON(ctx, http.MethodDelete, idPath("/pagamentos", id), nil, nil)
}
