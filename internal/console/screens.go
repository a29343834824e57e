package console

import (
	"context"
	"errors"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"

	"golang.org/x/sync/errgroup"
)

// Cuántas filas muestra cada pantalla antes de "ver todos".
const (
	TutorsPageSize       = 5
	AnimalsPageSize      = 6
	EmployeesPageSize    = 4
	AppointmentsPageSize = 7
	PaymentsPageSize     = 3
)

// ErrNoSelection: editar, borrar y ver detalle requieren un ítem seleccionado.
var ErrNoSelection = errors.New("no item selected")

// AnimalRow es un animal con el nombre de su tutor.
type AnimalRow struct {
	animals.Response
	TutorName string
}

// AppointmentRow es una consulta con los nombres de animal, tutor y funcionario.
type AppointmentRow struct {
	appointments.Response
	AnimalName   string
	TutorName    string
	EmployeeName string
}

// PaymentRow es un pago con datos de su consulta.
type PaymentRow struct {
	payments.Response
	AnimalName  string
	ScheduledAt time.Time
}

// ---------- Tutores ----------

type TutorsScreen struct {
	c    *Client
	Page *Page[tutors.Response]
}

func NewTutorsScreen(c *Client) *TutorsScreen {
	return &TutorsScreen{
		c: c,
		Page: NewPage(TutorsPageSize,
			func(t tutors.Response) int64 { return t.ID },
			func(t tutors.Response) string { return t.Nome }),
	}
}

func (s *TutorsScreen) Refresh(ctx context.Context) error {
	return s.Page.Load(ctx, s.c.Tutors)
}

func (s *TutorsScreen) Create(ctx context.Context, f TutorForm) (tutors.Response, error) {
	p, err := f.Payload()
	if err != nil {
		return tutors.Response{}, err
	}
	out, err := s.c.CreateTutor(ctx, p)
	if err != nil {
		return tutors.Response{}, err
	}
	return out, s.Refresh(ctx)
}

// Update edita el tutor seleccionado y parchea la lista local.
func (s *TutorsScreen) Update(ctx context.Context, f TutorForm) (tutors.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return tutors.Response{}, ErrNoSelection
	}
	p, err := f.Payload()
	if err != nil {
		return tutors.Response{}, err
	}
	out, err := s.c.UpdateTutor(ctx, sel.ID, p)
	if err != nil {
		return tutors.Response{}, err
	}
	s.Page.Upsert(out)
	return out, nil
}

func (s *TutorsScreen) Delete(ctx context.Context) error {
	sel, ok := s.Page.Selected()
	if !ok {
		return ErrNoSelection
	}
	if err := s.c.DeleteTutor(ctx, sel.ID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// SelectedAnimals es el detalle del tutor seleccionado.
func (s *TutorsScreen) SelectedAnimals(ctx context.Context) ([]animals.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return nil, ErrNoSelection
	}
	return s.c.TutorAnimals(ctx, sel.ID)
}

// ---------- Funcionarios ----------

type EmployeesScreen struct {
	c    *Client
	Page *Page[employees.Response]
}

func NewEmployeesScreen(c *Client) *EmployeesScreen {
	return &EmployeesScreen{
		c: c,
		Page: NewPage(EmployeesPageSize,
			func(e employees.Response) int64 { return e.ID },
			func(e employees.Response) string { return e.Nome }),
	}
}

func (s *EmployeesScreen) Refresh(ctx context.Context) error {
	return s.Page.Load(ctx, s.c.Employees)
}

func (s *EmployeesScreen) Create(ctx context.Context, f EmployeeForm) (employees.Response, error) {
	p, err := f.Payload()
	if err != nil {
		return employees.Response{}, err
	}
	out, err := s.c.CreateEmployee(ctx, p)
	if err != nil {
		return employees.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *EmployeesScreen) Update(ctx context.Context, f EmployeeForm) (employees.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return employees.Response{}, ErrNoSelection
	}
	p, err := f.Payload()
	if err != nil {
		return employees.Response{}, err
	}
	out, err := s.c.UpdateEmployee(ctx, sel.ID, p)
	if err != nil {
		return employees.Response{}, err
	}
	s.Page.Upsert(out)
	return out, nil
}

func (s *EmployeesScreen) Delete(ctx context.Context) error {
	sel, ok := s.Page.Selected()
	if !ok {
		return ErrNoSelection
	}
	if err := s.c.DeleteEmployee(ctx, sel.ID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *EmployeesScreen) SelectedAppointments(ctx context.Context) ([]appointments.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return nil, ErrNoSelection
	}
	return s.c.EmployeeAppointments(ctx, sel.ID)
}

// ---------- Animais ----------

type AnimalsScreen struct {
	c    *Client
	now  func() time.Time
	Page *Page[AnimalRow]

	// Tutors alimenta el select del formulario.
	Tutors []tutors.Response
}

func NewAnimalsScreen(c *Client) *AnimalsScreen {
	return &AnimalsScreen{
		c:   c,
		now: time.Now,
		Page: NewPage(AnimalsPageSize,
			func(a AnimalRow) int64 { return a.ID },
			func(a AnimalRow) string { return a.Nome }),
	}
}

// Refresh pide animales y tutores en paralelo; el primer error cancela al otro.
func (s *AnimalsScreen) Refresh(ctx context.Context) error {
	s.Page.begin()

	var (
		as []animals.Response
		ts []tutors.Response
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { as, err = s.c.Animals(gctx); return })
	g.Go(func() (err error) { ts, err = s.c.Tutors(gctx); return })
	if err := g.Wait(); err != nil {
		s.Page.finish(nil, err)
		return err
	}

	s.Tutors = ts
	s.Page.finish(joinAnimals(as, ts), nil)
	return nil
}

func joinAnimals(as []animals.Response, ts []tutors.Response) []AnimalRow {
	names := make(map[int64]string, len(ts))
	for _, t := range ts {
		names[t.ID] = t.Nome
	}
	out := make([]AnimalRow, 0, len(as))
	for _, a := range as {
		out = append(out, AnimalRow{Response: a, TutorName: names[a.IDTutor]})
	}
	return out
}

func (s *AnimalsScreen) Create(ctx context.Context, f AnimalForm) (animals.Response, error) {
	p, err := f.Payload(s.now())
	if err != nil {
		return animals.Response{}, err
	}
	out, err := s.c.CreateAnimal(ctx, p)
	if err != nil {
		return animals.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *AnimalsScreen) Update(ctx context.Context, f AnimalForm) (animals.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return animals.Response{}, ErrNoSelection
	}
	p, err := f.Payload(s.now())
	if err != nil {
		return animals.Response{}, err
	}
	out, err := s.c.UpdateAnimal(ctx, sel.ID, p)
	if err != nil {
		return animals.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *AnimalsScreen) Delete(ctx context.Context) error {
	sel, ok := s.Page.Selected()
	if !ok {
		return ErrNoSelection
	}
	if err := s.c.DeleteAnimal(ctx, sel.ID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *AnimalsScreen) SelectedAppointments(ctx context.Context) ([]appointments.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return nil, ErrNoSelection
	}
	return s.c.AnimalAppointments(ctx, sel.ID)
}

// ---------- Consultas ----------

type AppointmentsScreen struct {
	c    *Client
	now  func() time.Time
	Page *Page[AppointmentRow]

	// Opciones de los selects del formulario.
	Animals   []animals.Response
	Employees []employees.Response
}

func NewAppointmentsScreen(c *Client) *AppointmentsScreen {
	return &AppointmentsScreen{
		c:   c,
		now: time.Now,
		Page: NewPage(AppointmentsPageSize,
			func(a AppointmentRow) int64 { return a.ID },
			func(a AppointmentRow) string { return a.AnimalName }),
	}
}

func (s *AppointmentsScreen) Refresh(ctx context.Context) error {
	s.Page.begin()

	var (
		cs []appointments.DetailedResponse
		as []animals.Response
		es []employees.Response
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { cs, err = s.c.Appointments(gctx); return })
	g.Go(func() (err error) { as, err = s.c.Animals(gctx); return })
	g.Go(func() (err error) { es, err = s.c.Employees(gctx); return })
	if err := g.Wait(); err != nil {
		s.Page.finish(nil, err)
		return err
	}

	s.Animals, s.Employees = as, es
	s.Page.finish(joinAppointments(cs, as, es), nil)
	return nil
}

// joinAppointments resuelve nombres por id; si el animal o el funcionario no
// vino en su lista se usa lo que trae la consulta anidado.
func joinAppointments(cs []appointments.DetailedResponse, as []animals.Response, es []employees.Response) []AppointmentRow {
	animalNames := make(map[int64]string, len(as))
	for _, a := range as {
		animalNames[a.ID] = a.Nome
	}
	employeeNames := make(map[int64]string, len(es))
	for _, e := range es {
		employeeNames[e.ID] = e.Nome
	}

	out := make([]AppointmentRow, 0, len(cs))
	for _, c := range cs {
		row := AppointmentRow{
			Response:     c.Response,
			AnimalName:   animalNames[c.IDAnimal],
			TutorName:    c.Animal.Tutor.Nome,
			EmployeeName: employeeNames[c.IDFuncionario],
		}
		if row.AnimalName == "" {
			row.AnimalName = c.Animal.Nome
		}
		if row.EmployeeName == "" {
			row.EmployeeName = c.Funcionario.Nome
		}
		out = append(out, row)
	}
	return out
}

func (s *AppointmentsScreen) Create(ctx context.Context, f AppointmentForm) (appointments.Response, error) {
	p, err := f.Payload(s.now(), true)
	if err != nil {
		return appointments.Response{}, err
	}
	out, err := s.c.CreateAppointment(ctx, p)
	if err != nil {
		return appointments.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *AppointmentsScreen) Update(ctx context.Context, f AppointmentForm) (appointments.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return appointments.Response{}, ErrNoSelection
	}
	p, err := f.Payload(s.now(), false)
	if err != nil {
		return appointments.Response{}, err
	}
	out, err := s.c.UpdateAppointment(ctx, sel.ID, p)
	if err != nil {
		return appointments.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *AppointmentsScreen) Delete(ctx context.Context) error {
	sel, ok := s.Page.Selected()
	if !ok {
		return ErrNoSelection
	}
	if err := s.c.DeleteAppointment(ctx, sel.ID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *AppointmentsScreen) SelectedPayment(ctx context.Context) (payments.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return payments.Response{}, ErrNoSelection
	}
	return s.c.AppointmentPayment(ctx, sel.ID)
}

// ---------- Pagamentos ----------

type PaymentsScreen struct {
	c    *Client
	now  func() time.Time
	Page *Page[PaymentRow]

	// Appointments alimenta el select de consulta.
	Appointments []appointments.DetailedResponse
}

func NewPaymentsScreen(c *Client) *PaymentsScreen {
	return &PaymentsScreen{
		c:   c,
		now: time.Now,
		Page: NewPage(PaymentsPageSize,
			func(p PaymentRow) int64 { return p.ID },
			func(p PaymentRow) string { return p.AnimalName + " " + string(p.Metodo) }),
	}
}

func (s *PaymentsScreen) Refresh(ctx context.Context) error {
	s.Page.begin()

	var (
		ps []payments.Response
		cs []appointments.DetailedResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ps, err = s.c.Payments(gctx); return })
	g.Go(func() (err error) { cs, err = s.c.Appointments(gctx); return })
	if err := g.Wait(); err != nil {
		s.Page.finish(nil, err)
		return err
	}

	s.Appointments = cs
	s.Page.finish(joinPayments(ps, cs), nil)
	return nil
}

func joinPayments(ps []payments.Response, cs []appointments.DetailedResponse) []PaymentRow {
	byID := make(map[int64]appointments.DetailedResponse, len(cs))
	for _, c := range cs {
		byID[c.ID] = c
	}
	out := make([]PaymentRow, 0, len(ps))
	for _, p := range ps {
		c := byID[p.IDConsulta]
		out = append(out, PaymentRow{Response: p, AnimalName: c.Animal.Nome, ScheduledAt: c.DataHora})
	}
	return out
}

func (s *PaymentsScreen) Create(ctx context.Context, f PaymentForm) (payments.Response, error) {
	p, err := f.Payload(s.now())
	if err != nil {
		return payments.Response{}, err
	}
	out, err := s.c.CreatePayment(ctx, p)
	if err != nil {
		return payments.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *PaymentsScreen) Update(ctx context.Context, f PaymentForm) (payments.Response, error) {
	sel, ok := s.Page.Selected()
	if !ok {
		return payments.Response{}, ErrNoSelection
	}
	p, err := f.Payload(s.now())
	if err != nil {
		return payments.Response{}, err
	}
	out, err := s.c.UpdatePayment(ctx, sel.ID, p)
	if err != nil {
		return payments.Response{}, err
	}
	return out, s.Refresh(ctx)
}

func (s *PaymentsScreen) Delete(ctx context.Context) error {
	sel, ok := s.Page.Selected()
	if !ok {
		return ErrNoSelection
	}
	if err := s.c.DeletePayment(ctx, sel.ID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
